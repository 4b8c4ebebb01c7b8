// Package scoring turns analyzed posts into the published community score:
// the Engine computes a bounded engagement-weighted raw score per cycle and
// the Smoother dampens it across cycles with an exponential moving average.
package scoring
