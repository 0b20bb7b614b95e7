package trigger

import (
	"testing"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/stretchr/testify/suite"
)

type ParseTestSuite struct {
	suite.Suite
	aliases []*models.RoleAlias
}

func TestParseTestSuite(t *testing.T) {
	suite.Run(t, new(ParseTestSuite))
}

func (s *ParseTestSuite) SetupTest() {
	s.aliases = []*models.RoleAlias{
		{FacadeRoleID: "1069644995780423731", ActualRoleID: "1069645017414631474"},
		{FacadeRoleID: "2222222222222222222", ActualRoleID: "3333333333333333333"},
	}
}

func (s *ParseTestSuite) TestRatio() {
	match, ok := Parse("<@&1069644995780423731> 2/4", s.aliases)
	s.Require().True(ok)

	s.Equal(&Match{
		Numerator:    2,
		Denominator:  4,
		FacadeRoleID: "1069644995780423731",
		ActualRoleID: "1069645017414631474",
	}, match)
	s.True(match.HasRatio())
}

func (s *ParseTestSuite) TestAliasWithoutRatio() {
	match, ok := Parse("<@&2222222222222222222> anyone?", s.aliases)
	s.Require().True(ok)

	s.Equal(uint8(0), match.Numerator)
	s.Equal(uint8(0), match.Denominator)
	s.Equal("2222222222222222222", match.FacadeRoleID)
	s.Equal("3333333333333333333", match.ActualRoleID)
	s.False(match.HasRatio())
}

func (s *ParseTestSuite) TestZeroDenominatorHasNoRatio() {
	testCases := []struct {
		content string
		want    bool
	}{
		{content: "<@&1069644995780423731> 1/0", want: false},
		{content: "<@&1069644995780423731> 0/0", want: false},
		{content: "<@&1069644995780423731> 0/4", want: true},
	}

	for _, tc := range testCases {
		match, ok := Parse(tc.content, s.aliases)
		s.Require().True(ok, tc.content)
		s.Equal(tc.want, match.HasRatio(), tc.content)
	}
}

func (s *ParseTestSuite) TestNoAlias() {
	_, ok := Parse("<@&999> 2/4 anyone", s.aliases)
	s.False(ok)
}

func (s *ParseTestSuite) TestShortContent() {
	_, ok := Parse("2/", []*models.RoleAlias{{FacadeRoleID: "2", ActualRoleID: "3"}})
	s.False(ok)
}

func (s *ParseTestSuite) TestTwoDigitRatio() {
	match, ok := Parse("<@&1069644995780423731> 10/99", s.aliases)
	s.Require().True(ok)

	s.Equal(uint8(10), match.Numerator)
	s.Equal(uint8(99), match.Denominator)
}

func (s *ParseTestSuite) TestLongerNumberTakesTrailingDigits() {
	// Only one or two digits on each side are read
	match, ok := Parse("<@&1069644995780423731> 123/4567", s.aliases)
	s.Require().True(ok)

	s.Equal(uint8(23), match.Numerator)
	s.Equal(uint8(45), match.Denominator)
}

func (s *ParseTestSuite) TestSubstringFalsePositive() {
	aliases := []*models.RoleAlias{{FacadeRoleID: "12", ActualRoleID: "34"}}

	match, ok := Parse("room 123 1/3", aliases)
	s.Require().True(ok)
	s.Equal("12", match.FacadeRoleID)
}

func (s *ParseTestSuite) TestFirstMatchingAliasWins() {
	match, ok := Parse("<@&2222222222222222222> <@&1069644995780423731> 1/2", s.aliases)
	s.Require().True(ok)
	s.Equal("1069644995780423731", match.FacadeRoleID)
}

func (s *ParseTestSuite) TestSkipsEmptyAliases() {
	aliases := []*models.RoleAlias{nil, {FacadeRoleID: ""}, {FacadeRoleID: "555", ActualRoleID: "666"}}

	match, ok := Parse("<@&555> 1/2", aliases)
	s.Require().True(ok)
	s.Equal("666", match.ActualRoleID)
}
