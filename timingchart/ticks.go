// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package timingchart

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PowerLimits bounds the orders of magnitude that are labeled
// without an exponent. Data whose order of magnitude is at or below
// Lo or at or above Hi is labeled in units of 10^k and the axis label
// carries the exponent.
type PowerLimits struct {
	Lo, Hi int
}

// DefaultPowerLimits switches to scientific notation below 10^-2 and
// from 10^3 up.
var DefaultPowerLimits = PowerLimits{Lo: -3, Hi: 3}

// exponent returns the power of ten that axis labels for the range
// [min, max] should be divided by, or 0 to label values directly.
func (l PowerLimits) exponent(min, max float64) int {
	m := math.Max(math.Abs(min), math.Abs(max))
	if m == 0 || math.IsInf(m, 0) || math.IsNaN(m) {
		return 0
	}
	oom := int(math.Floor(math.Log10(m)))
	if math.Pow10(oom+1) <= m {
		// Log10 rounds down at some exact powers of ten.
		oom++
	}
	if oom <= l.Lo || oom >= l.Hi {
		return oom
	}
	return 0
}

// sciTicks labels the default tick positions in units of 10^exp.
type sciTicks struct {
	exp int
}

func (t sciTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	if t.exp == 0 {
		return ticks
	}
	scale := math.Pow10(t.exp)
	for i := range ticks {
		if ticks[i].Label == "" {
			// Minor tick.
			continue
		}
		ticks[i].Label = strconv.FormatFloat(ticks[i].Value/scale, 'g', 4, 64)
	}
	return ticks
}

// threadTicks returns one labeled tick per thread count.
func threadTicks(threads []int) plot.ConstantTicks {
	ticks := make([]plot.Tick, len(threads))
	for i, th := range threads {
		ticks[i] = plot.Tick{Value: float64(th), Label: strconv.Itoa(th)}
	}
	return plot.ConstantTicks(ticks)
}
