package game

import "fmt"

// RiskToLose is the chance that the next roll busts, given the current total.
// Faces that would push the total to BustThreshold or beyond count as losing.
func RiskToLose(total int) float64 {
	remaining := BustThreshold - total
	if remaining >= DieSides {
		return 0
	}
	risk := float64(DieSides-remaining) / DieSides
	if risk > 1 {
		return 1
	}
	if risk < 0 {
		return 0
	}
	return risk
}

func FormatRisk(risk float64) string {
	return fmt.Sprintf("%.2f%%", risk*100)
}

func scoredValue(face int) int {
	if face == skippedFace {
		return 0
	}
	return face
}
