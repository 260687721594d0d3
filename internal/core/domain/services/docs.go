// Package services holds domain logic that spans several aggregates.
//
// The package includes:
//   - PriceResolver: computes an order's price from the price rules valid on its shipment date
//   - OrderFactory: validates a draft against the menu and builds a priced Order
package services
