package forecast

// LinearRegression fits slope and intercept by ordinary least squares
// over (index, value) pairs. Fewer than two points carries no trend
// information, so it returns nil rather than an error.
func LinearRegression(data []float64) *Regression {
	n := len(data)
	if n < 2 {
		return nil
	}

	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range data {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumX2 - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	return &Regression{Slope: slope, Intercept: intercept}
}

// MovingAverage smooths a series with a trailing window. Early positions
// average over however many points are available.
func MovingAverage(data []float64, window int) []float64 {
	result := make([]float64, 0, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		var sum float64
		for _, v := range data[start : i+1] {
			sum += v
		}
		result = append(result, sum/float64(i+1-start))
	}
	return result
}

// RealisticDailyRate estimates hours per calendar day from a daily series.
// A naive mean overweights zero-activity days, so the rate is the mean
// over active days scaled by how often work actually happens:
// mean(activeDays) * activeDayCount/totalDayCount.
func RealisticDailyRate(historical []float64) float64 {
	var activeSum float64
	var activeCount int
	for _, hours := range historical {
		if hours > 0 {
			activeSum += hours
			activeCount++
		}
	}
	if activeCount == 0 {
		return 0
	}
	avgPerWorkDay := activeSum / float64(activeCount)
	workFrequency := float64(activeCount) / float64(len(historical))
	return avgPerWorkDay * workFrequency
}
