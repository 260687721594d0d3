package commands

import "time"

// PaymentObserver is told how every committed payment attempt ended.
type PaymentObserver interface {
	ObservePayment(outcome string)
}

// AdvanceObserver is told the result of every batch status run.
type AdvanceObserver interface {
	ObserveAdvance(advanced, failed, skipped int, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) ObservePayment(string) {}

func (nopObserver) ObserveAdvance(int, int, int, time.Duration) {}
