package eq

// Fault geometry bounds in degrees and km.
const (
	MinStrike = 0.0
	MaxStrike = 360.0

	MinDip = 0.0
	MaxDip = 90.0

	MinRake = -180.0
	MaxRake = 180.0

	MinCrustalDepth = 0.0
	MaxCrustalDepth = 40.0

	// Crustal width range is (0, 60]; zero-width ruptures are invalid.
	MaxCrustalWidth = 60.0

	MinSlabDepth = 20.0
	MaxSlabDepth = 700.0

	MinInterfaceDepth = 0.0
	MaxInterfaceDepth = 60.0

	// Interface width range is (0, 200].
	MaxInterfaceWidth = 200.0
)

// CheckStrike ensures 0 ≤ strike ≤ 360°.
func CheckStrike(strike float64) (float64, error) {
	return checkClosed("strike", strike, MinStrike, MaxStrike)
}

// CheckDip ensures 0 ≤ dip ≤ 90°.
func CheckDip(dip float64) (float64, error) {
	return checkClosed("dip", dip, MinDip, MaxDip)
}

// CheckRake ensures -180 ≤ rake ≤ 180°.
func CheckRake(rake float64) (float64, error) {
	return checkClosed("rake", rake, MinRake, MaxRake)
}

// CheckCrustalDepth ensures 0 ≤ depth ≤ 40 km.
func CheckCrustalDepth(depth float64) (float64, error) {
	return checkClosed("crustal depth", depth, MinCrustalDepth, MaxCrustalDepth)
}

// CheckCrustalWidth ensures 0 < width ≤ 60 km.
func CheckCrustalWidth(width float64) (float64, error) {
	return checkOpenClosed("crustal width", width, 0, MaxCrustalWidth)
}

// CheckSlabDepth ensures 20 ≤ depth ≤ 700 km.
func CheckSlabDepth(depth float64) (float64, error) {
	return checkClosed("slab depth", depth, MinSlabDepth, MaxSlabDepth)
}

// CheckInterfaceDepth ensures 0 ≤ depth ≤ 60 km.
func CheckInterfaceDepth(depth float64) (float64, error) {
	return checkClosed("interface depth", depth, MinInterfaceDepth, MaxInterfaceDepth)
}

// CheckInterfaceWidth ensures 0 < width ≤ 200 km.
func CheckInterfaceWidth(width float64) (float64, error) {
	return checkOpenClosed("interface width", width, 0, MaxInterfaceWidth)
}
