package alias

import (
	"context"
	"testing"

	"github.com/KirkDiggler/chair/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestNewRedisValidation() {
	_, err := NewRedis(nil)
	s.Error(err)

	_, err = NewRedis(&Config{})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestSaveAndGetAlias() {
	err := s.repo.SaveAlias(s.ctx, &SaveAliasInput{
		Alias: &models.RoleAlias{FacadeRoleID: "1069644995780423731", ActualRoleID: "1069645017414631474"},
	})
	s.Require().NoError(err)

	alias, err := s.repo.GetAlias(s.ctx, &GetAliasInput{FacadeRoleID: "1069644995780423731"})
	s.Require().NoError(err)
	s.Equal("1069645017414631474", alias.ActualRoleID)

	// Stored as a plain hash field so it can be inspected by hand
	s.Equal("1069645017414631474", s.mr.HGet(aliasesKey, "1069644995780423731"))
}

func (s *RedisRepositoryTestSuite) TestSaveAliasReplaces() {
	s.Require().NoError(s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: &models.RoleAlias{FacadeRoleID: "1", ActualRoleID: "2"}}))
	s.Require().NoError(s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: &models.RoleAlias{FacadeRoleID: "1", ActualRoleID: "3"}}))

	alias, err := s.repo.GetAlias(s.ctx, &GetAliasInput{FacadeRoleID: "1"})
	s.Require().NoError(err)
	s.Equal("3", alias.ActualRoleID)
}

func (s *RedisRepositoryTestSuite) TestSaveAliasRejectsInvalidIDs() {
	err := s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: &models.RoleAlias{FacadeRoleID: "<@&1>", ActualRoleID: "2"}})
	s.ErrorIs(err, ErrInvalidRoleID)

	err = s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: &models.RoleAlias{FacadeRoleID: "1", ActualRoleID: ""}})
	s.ErrorIs(err, ErrInvalidRoleID)

	s.Error(s.repo.SaveAlias(s.ctx, nil))
}

func (s *RedisRepositoryTestSuite) TestGetAliasNotFound() {
	_, err := s.repo.GetAlias(s.ctx, &GetAliasInput{FacadeRoleID: "404"})
	s.ErrorIs(err, ErrAliasNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteAlias() {
	s.Require().NoError(s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: &models.RoleAlias{FacadeRoleID: "1", ActualRoleID: "2"}}))

	s.Require().NoError(s.repo.DeleteAlias(s.ctx, &DeleteAliasInput{FacadeRoleID: "1"}))

	_, err := s.repo.GetAlias(s.ctx, &GetAliasInput{FacadeRoleID: "1"})
	s.ErrorIs(err, ErrAliasNotFound)

	err = s.repo.DeleteAlias(s.ctx, &DeleteAliasInput{FacadeRoleID: "1"})
	s.ErrorIs(err, ErrAliasNotFound)
}

func (s *RedisRepositoryTestSuite) TestListAliasesSorted() {
	for _, alias := range []*models.RoleAlias{
		{FacadeRoleID: "30", ActualRoleID: "31"},
		{FacadeRoleID: "10", ActualRoleID: "11"},
		{FacadeRoleID: "20", ActualRoleID: "21"},
	} {
		s.Require().NoError(s.repo.SaveAlias(s.ctx, &SaveAliasInput{Alias: alias}))
	}

	output, err := s.repo.ListAliases(s.ctx, &ListAliasesInput{})
	s.Require().NoError(err)
	s.Equal([]*models.RoleAlias{
		{FacadeRoleID: "10", ActualRoleID: "11"},
		{FacadeRoleID: "20", ActualRoleID: "21"},
		{FacadeRoleID: "30", ActualRoleID: "31"},
	}, output.Aliases)
}

func (s *RedisRepositoryTestSuite) TestListAliasesEmpty() {
	output, err := s.repo.ListAliases(s.ctx, &ListAliasesInput{})
	s.Require().NoError(err)
	s.Empty(output.Aliases)
}

func (s *RedisRepositoryTestSuite) TestListAliasesRedisDown() {
	s.mr.SetError("LOADING Redis is loading the dataset in memory")

	_, err := s.repo.ListAliases(s.ctx, &ListAliasesInput{})
	s.Error(err)
}
