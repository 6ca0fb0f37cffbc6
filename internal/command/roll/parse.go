package roll

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

var (
	tokenRegex = regexp.MustCompile(`(?i)(\d*d\d+|\d+|[+\-*/])`)
	diceRegex  = regexp.MustCompile(`(?i)^(\d*)d(\d+)$`)
	validOps   = map[string]bool{"+": true, "-": true, "*": true, "/": true}
)

const (
	maxDice  = 100
	maxSides = 1000
)

type term struct {
	value  int
	desc   string
	op     string
	isDice bool
}

// Result of evaluating a dice formula.
type Result struct {
	Total   int
	Pretty  string // per-term breakdown, e.g. `2d6` [3, 5] + `2`
	DiceMax int    // largest die size rolled, 0 when the formula had no dice
	Crit    bool   // any die landed on its maximum face
	Fumble  bool   // any die landed on 1
}

// Evaluate parses and rolls a formula like `2d6+1d4*2-3`. Multiplication
// and division bind tighter than addition; division is integer and by
// zero is rejected.
func Evaluate(formula string, rng *rand.Rand) (*Result, error) {
	formula = strings.ReplaceAll(formula, " ", "")
	tokens := tokenRegex.FindAllString(formula, -1)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("can't parse formula %q", formula)
	}

	res := &Result{}
	var terms []term
	currentOp := "+"

	for _, token := range tokens {
		if validOps[token] {
			currentOp = token
			continue
		}

		t, err := evaluateToken(token, rng, res)
		if err != nil {
			return nil, fmt.Errorf("failed to evaluate `%s`: %w", token, err)
		}
		t.op = currentOp
		terms = append(terms, t)
	}

	var merged []term
	for _, t := range terms {
		if t.op == "*" || t.op == "/" {
			if len(merged) == 0 {
				return nil, fmt.Errorf("operator without left operand")
			}
			prev := merged[len(merged)-1]
			merged = merged[:len(merged)-1]

			var newVal int
			switch t.op {
			case "*":
				newVal = prev.value * t.value
			case "/":
				if t.value == 0 {
					return nil, fmt.Errorf("division by zero")
				}
				newVal = prev.value / t.value
			}

			merged = append(merged, term{
				value:  newVal,
				desc:   fmt.Sprintf("%s %s %s", prev.desc, t.op, t.desc),
				op:     prev.op,
				isDice: prev.isDice || t.isDice,
			})
		} else {
			merged = append(merged, t)
		}
	}

	var details []string
	for _, t := range merged {
		if len(details) > 0 {
			details = append(details, fmt.Sprintf(" %s ", t.op))
		}
		details = append(details, t.desc)

		switch t.op {
		case "+":
			res.Total += t.value
		case "-":
			res.Total -= t.value
		default:
			return nil, fmt.Errorf("unexpected operator %q", t.op)
		}
	}

	res.Pretty = strings.Join(details, "")
	return res, nil
}

func evaluateToken(token string, rng *rand.Rand, res *Result) (term, error) {
	if diceRegex.MatchString(token) {
		matches := diceRegex.FindStringSubmatch(token)
		countStr, sidesStr := matches[1], matches[2]

		count := 1
		if countStr != "" {
			n, err := strconv.Atoi(countStr)
			if err != nil {
				return term{}, fmt.Errorf("invalid dice count")
			}
			count = n
		}

		sides, err := strconv.Atoi(sidesStr)
		if err != nil || sides < 2 {
			return term{}, fmt.Errorf("invalid dice sides")
		}
		if count > maxDice || sides > maxSides {
			return term{}, fmt.Errorf("too big, max %d dice with %d sides", maxDice, maxSides)
		}

		if sides > res.DiceMax {
			res.DiceMax = sides
		}

		var sum int
		var rolls []string
		for i := 0; i < count; i++ {
			r := rng.Intn(sides) + 1
			sum += r
			rolls = append(rolls, strconv.Itoa(r))
			if r == sides {
				res.Crit = true
			}
			if r == 1 {
				res.Fumble = true
			}
		}
		return term{value: sum, desc: fmt.Sprintf("`%s` [%s]", token, strings.Join(rolls, ", ")), isDice: true}, nil
	}

	num, err := strconv.Atoi(token)
	if err != nil {
		return term{}, fmt.Errorf("not a number or dice")
	}
	return term{value: num, desc: fmt.Sprintf("`%d`", num)}, nil
}
