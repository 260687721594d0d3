// Package docs registers the OpenAPI description of the meal delivery API
// with swag so that echo-swagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/orders": {
            "post": {
                "summary": "Create an order",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewOrder"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CreatedOrder"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/active": {
            "get": {
                "summary": "List orders that have not reached a final status",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/PendingOrder"}}}
                }
            }
        },
        "/api/v1/orders/advance": {
            "post": {
                "summary": "Move every eligible order one status forward",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/AdvanceReport"}}
                }
            }
        },
        "/api/v1/orders/{orderId}": {
            "get": {
                "summary": "Get an order snapshot",
                "parameters": [{"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true}],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/{orderId}/address": {
            "put": {
                "summary": "Change the delivery address",
                "parameters": [
                    {"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/ChangeAddress"}}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/{orderId}/cancel": {
            "post": {
                "summary": "Cancel an order on behalf of its owner",
                "parameters": [
                    {"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/CancelOrder"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Refund"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/{orderId}/pay": {
            "post": {
                "summary": "Pay an order from the owner's balance",
                "parameters": [
                    {"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/PayOrder"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/PaymentResult"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/orders/{orderId}/reject": {
            "post": {
                "summary": "Reject an order",
                "parameters": [
                    {"in": "path", "name": "orderId", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/RejectOrder"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Refund"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/prices": {
            "post": {
                "summary": "Add a price rule",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/NewPrice"}}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/users/{userId}/account": {
            "get": {
                "summary": "Get a user's balance, credit and transactions",
                "parameters": [{"in": "path", "name": "userId", "type": "string", "format": "uuid", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UserAccount"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/v1/users/{userId}/funds": {
            "post": {
                "summary": "Record funds paid in outside the system",
                "parameters": [
                    {"in": "path", "name": "userId", "type": "string", "format": "uuid", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/AddFunds"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Transaction"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        }
    },
    "definitions": {
        "Error": {"type": "object", "properties": {"code": {"type": "integer"}, "message": {"type": "string"}}},
        "DishItem": {"type": "object", "properties": {"dishId": {"type": "string", "format": "uuid"}, "size": {"type": "string", "enum": ["small", "medium", "big"]}}},
        "NewOrder": {"type": "object", "properties": {"address": {"type": "string"}, "items": {"type": "array", "items": {"$ref": "#/definitions/DishItem"}}, "shipmentDate": {"type": "string", "format": "date"}, "userId": {"type": "string", "format": "uuid"}}},
        "CreatedOrder": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "orderNumber": {"type": "integer"}}},
        "PendingOrder": {"type": "object", "properties": {"id": {"type": "string", "format": "uuid"}, "number": {"type": "integer"}, "paid": {"type": "boolean"}, "shipmentDate": {"type": "string", "format": "date"}, "status": {"type": "string"}}},
        "PayOrder": {"type": "object", "properties": {"userId": {"type": "string", "format": "uuid"}}},
        "PaymentResult": {"type": "object", "properties": {"outcome": {"type": "string"}, "paid": {"type": "boolean"}, "transactionId": {"type": "string", "format": "uuid"}}},
        "CancelOrder": {"type": "object", "properties": {"reason": {"type": "string"}, "userId": {"type": "string", "format": "uuid"}}},
        "RejectOrder": {"type": "object", "properties": {"reason": {"type": "string"}}},
        "Refund": {"type": "object", "properties": {"refundId": {"type": "string", "format": "uuid"}}},
        "ChangeAddress": {"type": "object", "properties": {"address": {"type": "string"}}},
        "AddFunds": {"type": "object", "properties": {"amount": {"type": "string"}, "paidAt": {"type": "string"}}},
        "Transaction": {"type": "object", "properties": {"amount": {"type": "string"}, "createdAt": {"type": "string", "format": "date-time"}, "id": {"type": "string", "format": "uuid"}, "paidAt": {"type": "string", "format": "date-time"}, "type": {"type": "string"}}},
        "UserAccount": {"type": "object", "properties": {"balance": {"type": "string"}, "credit": {"type": "string"}, "name": {"type": "string"}, "transactions": {"type": "array", "items": {"$ref": "#/definitions/Transaction"}}, "userId": {"type": "string", "format": "uuid"}}},
        "NewPrice": {"type": "object", "properties": {"date": {"type": "string", "format": "date"}, "items": {"type": "array", "items": {"$ref": "#/definitions/DishItem"}}, "value": {"type": "string"}}},
        "AdvanceReport": {"type": "object", "properties": {"advanced": {"type": "integer"}, "failed": {"type": "integer"}, "skipped": {"type": "integer"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Meal delivery API",
	Description:      "Orders, payments, prices and user balances of the meal delivery service.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
