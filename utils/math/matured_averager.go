// Copyright (C) 2019-2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package math

import "time"

var _ Averager = (*maturedAverager)(nil)

// maturedAverager wraps an Averager and reads zero until the wrapped averager
// has warmed up.
type maturedAverager struct {
	Averager
}

// NewMaturedAverager hides the unstable early values of [averager]. Reads
// return 0 until [averager] reports WarmedUp. Observations pass through
// unchanged, so a read error is still reported once the averager matures.
func NewMaturedAverager(averager Averager) Averager {
	return &maturedAverager{
		Averager: averager,
	}
}

func (a *maturedAverager) Get() (float64, error) {
	if !a.Averager.WarmedUp() {
		return 0, nil
	}
	return a.Averager.Get()
}

func (a *maturedAverager) GetAt(currentTime time.Time) (float64, error) {
	if !a.Averager.WarmedUp() {
		return 0, nil
	}
	return a.Averager.GetAt(currentTime)
}
