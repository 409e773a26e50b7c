package interp

// Linear interpolates between a (t = 0) and b (t = 1).
func Linear(t, a, b float64) float64 {
	return a + t*(b-a)
}
