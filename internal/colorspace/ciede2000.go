package colorspace

import "math"

// 25^7
const pow25To7 = 6103515625.0

// CIEDE2000 returns the CIEDE2000 color difference between two Lab colors
// with unit weighting factors (kL = kC = kH = 1).
func CIEDE2000(lab1, lab2 Lab) float64 {
	l1, a1, b1 := lab1.L, lab1.A, lab1.B
	l2, a2, b2 := lab2.L, lab2.A, lab2.B

	c1 := math.Hypot(a1, b1)
	c2 := math.Hypot(a2, b2)
	cMean := (c1 + c2) / 2
	cMean7 := math.Pow(cMean, 7)
	g := 0.5 * (1 - math.Sqrt(cMean7/(cMean7+pow25To7)))

	a1p := (1 + g) * a1
	a2p := (1 + g) * a2

	c1p := math.Hypot(a1p, b1)
	c2p := math.Hypot(a2p, b2)

	h1p := hueAngle(a1p, b1)
	h2p := hueAngle(a2p, b2)

	dLp := l2 - l1
	dCp := c2p - c1p

	dhp := h2p - h1p
	switch {
	case c1p*c2p == 0:
		dhp = 0
	case dhp > math.Pi:
		dhp -= 2 * math.Pi
	case dhp < -math.Pi:
		dhp += 2 * math.Pi
	}
	dHp := 2 * math.Sqrt(c1p*c2p) * math.Sin(dhp/2)

	lMean := (l1 + l2) / 2
	cpMean := (c1p + c2p) / 2

	hDiff := math.Abs(h1p - h2p)
	hSum := h1p + h2p
	cProduct := c1p * c2p

	var hMean float64
	switch {
	case cProduct == 0:
		hMean = hSum
	case hDiff <= math.Pi:
		hMean = hSum / 2
	case hSum < 2*math.Pi:
		hMean = hSum/2 + math.Pi
	default:
		hMean = hSum/2 - math.Pi
	}

	t := 1 -
		0.17*math.Cos(hMean-math.Pi/6) +
		0.24*math.Cos(2*hMean) +
		0.32*math.Cos(3*hMean+math.Pi/30) -
		0.20*math.Cos(4*hMean-63*math.Pi/180)

	hMeanDeg := hMean * 180 / math.Pi
	if hMeanDeg < 0 {
		hMeanDeg += 360
	} else if hMeanDeg > 360 {
		hMeanDeg -= 360
	}
	dTheta := 30 * math.Exp(-math.Pow((hMeanDeg-275)/25, 2))

	cpMean7 := math.Pow(cpMean, 7)
	rC := 2 * math.Sqrt(cpMean7/(cpMean7+pow25To7))
	sC := 1 + 0.045*cpMean
	sH := 1 + 0.015*cpMean*t

	lm50 := (lMean - 50) * (lMean - 50)
	sL := 1 + 0.015*lm50/math.Sqrt(20+lm50)
	rT := -math.Sin(dTheta*math.Pi/90) * rC

	fL := dLp / sL
	fC := dCp / sC
	fH := dHp / sH

	return math.Sqrt(fL*fL + fC*fC + fH*fH + rT*fC*fH)
}

// hueAngle returns atan2(b, a) mapped to [0, 2π), with 0 for the achromatic axis
func hueAngle(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 0
	}
	h := math.Atan2(b, a)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}
