// Package kernel holds the value objects shared by the order-management
// aggregates: identifiers (UUID), amounts (Money), portion sizes (Size),
// text bound checks and the Clock used to stamp lifecycle events.
//
// All value objects are immutable; their zero values are invalid where a zero
// would be meaningless (UUID, Size).
package kernel
