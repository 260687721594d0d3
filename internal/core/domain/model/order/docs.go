// Package order contains the Order aggregate and its lifecycle.
//
// An order moves Created → InProgress → Delivered → Closed, can be canceled
// while Created and rejected at any point before it is closed. Every
// transition is guarded; a failed guard returns an *errs.InvalidStateError
// and leaves the order untouched.
//
// Payment is a sub-state owned by the order. Paying charges the owner's
// balance through an outcome transaction; when the balance is short the
// price is absorbed once as user credit instead. Cancel and Reject of a paid
// order return refund transactions. The caller persists the order, the
// user and any returned transaction in one unit of work.
package order
