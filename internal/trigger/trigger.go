// Package trigger decides whether a chat message is a looking-for-group ping
// and extracts the requested fill ratio.
package trigger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/chair/internal/models"
)

var ratioPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})`)

// Match is a parsed trigger. A zero Numerator and Denominator means the alias
// was referenced without a ratio.
type Match struct {
	Numerator    uint8
	Denominator  uint8
	FacadeRoleID string
	ActualRoleID string
}

// HasRatio reports whether the message carried a usable "n/m" ratio. A zero
// denominator asks for nobody and is treated like a missing ratio.
func (m *Match) HasRatio() bool {
	return m.Denominator != 0
}

// Parse looks for the first alias whose facade role ID appears in content and,
// if one is found, the first "n/m" ratio of one or two digits each.
//
// Facade IDs are matched as plain substrings, so an alias "12" also matches a
// message containing "123".
func Parse(content string, aliases []*models.RoleAlias) (*Match, bool) {
	if len(content) < 3 {
		return nil, false
	}

	var alias *models.RoleAlias
	for _, candidate := range aliases {
		if candidate == nil || candidate.FacadeRoleID == "" {
			continue
		}
		if strings.Contains(content, candidate.FacadeRoleID) {
			alias = candidate
			break
		}
	}
	if alias == nil {
		return nil, false
	}

	match := &Match{
		FacadeRoleID: alias.FacadeRoleID,
		ActualRoleID: alias.ActualRoleID,
	}

	groups := ratioPattern.FindStringSubmatch(content)
	if groups == nil {
		return match, true
	}

	// Two decimal digits always fit in a uint8
	numerator, _ := strconv.ParseUint(groups[1], 10, 8)
	denominator, _ := strconv.ParseUint(groups[2], 10, 8)
	match.Numerator = uint8(numerator)
	match.Denominator = uint8(denominator)

	return match, true
}
