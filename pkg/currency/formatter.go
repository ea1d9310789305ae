package currency

import (
	"fmt"
	"math"
)

// FormatBRL renders an amount as Brazilian reais, e.g. "R$ 1.330,00".
func FormatBRL(amount float64) string {
	cents := int64(math.Round(math.Abs(amount) * 100))
	intPart := cents / 100
	fracPart := cents % 100

	formatted := addThousandsSeparator(fmt.Sprintf("%d", intPart), ".")
	result := fmt.Sprintf("R$ %s,%02d", formatted, fracPart)
	if amount < 0 {
		result = "-" + result
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
