// Package user models the customer side of the ledger: a User holds a balance
// that is charged when orders are paid and a credit counter tracking what the
// business absorbed when a charge could not be covered.
//
// Balance never goes below zero; a charge larger than the balance fails with
// ErrInsufficientFunds and leaves the balance untouched. Credit never goes
// below zero either; paying more credit than is owed simply clears it.
package user
