package arena

import (
	"fmt"
	"strings"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
)

// DefaultOpenings are short move sequences from the initial position.
// Every opening is played twice with colours swapped.
var DefaultOpenings = []string{
	"e2e4 e7e5 g1f3 b8c6 f1c4 f8c5",
	"e2e4 c7c5 g1f3 d7d6 d2d4 c5d4 f3d4 g8f6 b1c3",
	"d2d4 d7d5 c2c4 e7e6 b1c3 g8f6",
	"d2d4 g8f6 c2c4 g7g6 b1c3 f8g7 e2e4 d7d6",
	"e2e4 e7e6 d2d4 d7d5 b1c3 f8b4",
	"c2c4 e7e5 b1c3 g8f6 g2g3",
	"e2e4 c7c6 d2d4 d7d5 e4e5 c8f5",
	"g1f3 d7d5 g2g3 g8f6 f1g2 e7e6 e1g1",
}

func parseOpening(opening string) ([]string, error) {
	var moves = strings.Fields(opening)
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	if err != nil {
		return nil, err
	}
	for _, lan := range moves {
		if !p.MakeMoveLAN(lan) {
			return nil, fmt.Errorf("opening %q: illegal move %v", opening, lan)
		}
	}
	return moves, nil
}
