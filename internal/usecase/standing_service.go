package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
	"github.com/riskibarqy/season-tracker/internal/domain/leaguestanding"
	"github.com/riskibarqy/season-tracker/internal/domain/team"
	"github.com/riskibarqy/season-tracker/internal/platform/logging"
)

const maxFormLimit = 50

// RoundTable is a ranked table for one round. Round is zero when the scope
// has no completed matches yet.
type RoundTable struct {
	Scope competition.Scope
	Round int
	Rows  []leaguestanding.TableRow
}

// TeamMatch is one completed match from the team's side with the opponent
// resolved for display. OpponentName is nil when metadata is missing.
type TeamMatch struct {
	leaguestanding.MatchSummary
	OpponentName *string
}

// StandingService answers read-side queries over derived tables.
type StandingService struct {
	standingRepo leaguestanding.Repository
	teamRepo     team.Repository
	formLength   int
	logger       *logging.Logger
}

func NewStandingService(
	standingRepo leaguestanding.Repository,
	teamRepo team.Repository,
	formLength int,
	logger *logging.Logger,
) *StandingService {
	if formLength <= 0 {
		formLength = leaguestanding.DefaultFormLength
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingService{
		standingRepo: standingRepo,
		teamRepo:     teamRepo,
		formLength:   formLength,
		logger:       logger,
	}
}

// LatestTable returns the standings of the highest stored round.
func (s *StandingService) LatestTable(ctx context.Context, scope competition.Scope) (RoundTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.LatestTable", scope)
	defer span.End()

	return s.Table(ctx, scope, 0)
}

// Table returns the ranked table after round; round <= 0 means latest.
func (s *StandingService) Table(ctx context.Context, scope competition.Scope, round int) (RoundTable, error) {
	scope, err := normalizeScope(scope)
	if err != nil {
		return RoundTable{}, err
	}

	var rows []leaguestanding.Standing
	if round <= 0 {
		rows, err = s.standingRepo.ListLatestStandings(ctx, scope)
		if err != nil {
			return RoundTable{}, fmt.Errorf("list latest standings: %w", err)
		}
		if len(rows) == 0 {
			return RoundTable{Scope: scope, Rows: []leaguestanding.TableRow{}}, nil
		}
		round = rows[0].Round
	} else {
		rows, err = s.standingRepo.ListStandingsByRound(ctx, scope, round)
		if err != nil {
			return RoundTable{}, fmt.Errorf("list standings round=%d: %w", round, err)
		}
		if len(rows) == 0 {
			return RoundTable{}, fmt.Errorf("%w: no standings for scope=%s round=%d", ErrNotFound, scope, round)
		}
	}
	ranked := leaguestanding.Rank(rows)

	facts, err := s.standingRepo.ListFacts(ctx, scope, 0)
	if err != nil {
		return RoundTable{}, fmt.Errorf("list match facts: %w", err)
	}
	forms := leaguestanding.FormsByTeam(factsUpToRound(facts, round), s.formLength)

	teamIDs := make([]int64, 0, len(ranked))
	for _, row := range ranked {
		teamIDs = append(teamIDs, row.TeamID)
	}
	teams, err := s.teamsByID(ctx, teamIDs)
	if err != nil {
		return RoundTable{}, err
	}

	table, missing := leaguestanding.LatestTable(ranked, teams, forms)
	if len(missing) > 0 {
		s.logger.WarnContext(ctx, "teams missing from metadata", "scope", scope.Key(), "team_ids", missing)
	}

	return RoundTable{Scope: scope, Round: round, Rows: table}, nil
}

// PositionHistory ranks the whole league per round and then narrows to
// teamID when it is positive.
func (s *StandingService) PositionHistory(ctx context.Context, scope competition.Scope, teamID int64) ([]leaguestanding.PositionPoint, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.PositionHistory", scope)
	defer span.End()

	scope, err := normalizeScope(scope)
	if err != nil {
		return nil, err
	}
	if teamID < 0 {
		return nil, fmt.Errorf("%w: team id must not be negative", ErrInvalidInput)
	}

	rows, err := s.standingRepo.ListStandings(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}

	points := leaguestanding.FilterTeam(leaguestanding.PositionHistory(rows), teamID)
	if points == nil {
		points = []leaguestanding.PositionPoint{}
	}
	return points, nil
}

// Form returns the team's latest results, newest first.
func (s *StandingService) Form(ctx context.Context, scope competition.Scope, teamID int64, limit int) ([]leaguestanding.MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Form", scope)
	defer span.End()

	scope, err := normalizeScope(scope)
	if err != nil {
		return nil, err
	}
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	switch {
	case limit <= 0:
		limit = s.formLength
	case limit > maxFormLimit:
		limit = maxFormLimit
	}

	facts, err := s.standingRepo.ListFacts(ctx, scope, teamID)
	if err != nil {
		return nil, fmt.Errorf("list match facts team=%d: %w", teamID, err)
	}
	return leaguestanding.Take(leaguestanding.Form(facts, teamID), limit), nil
}

// Matches lists every completed match of the team, newest first.
func (s *StandingService) Matches(ctx context.Context, scope competition.Scope, teamID int64) ([]TeamMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Matches", scope)
	defer span.End()

	scope, err := normalizeScope(scope)
	if err != nil {
		return nil, err
	}
	if teamID <= 0 {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	facts, err := s.standingRepo.ListFacts(ctx, scope, teamID)
	if err != nil {
		return nil, fmt.Errorf("list match facts team=%d: %w", teamID, err)
	}
	summaries := leaguestanding.Take(leaguestanding.Form(facts, teamID), 0)

	opponentIDs := make([]int64, 0, len(summaries))
	for _, item := range summaries {
		opponentIDs = append(opponentIDs, item.OpponentID)
	}
	teams, err := s.teamsByID(ctx, opponentIDs)
	if err != nil {
		return nil, err
	}

	out := make([]TeamMatch, 0, len(summaries))
	for _, item := range summaries {
		row := TeamMatch{MatchSummary: item}
		if opponent, ok := teams[item.OpponentID]; ok {
			name := opponent.DisplayName()
			row.OpponentName = &name
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *StandingService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *StandingService) teamsByID(ctx context.Context, ids []int64) (map[int64]team.Team, error) {
	if len(ids) == 0 {
		return map[int64]team.Team{}, nil
	}
	teams, err := s.teamRepo.ListByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, fmt.Errorf("list teams by ids: %w", err)
	}
	out := make(map[int64]team.Team, len(teams))
	for _, item := range teams {
		out[item.ID] = item
	}
	return out, nil
}

func normalizeScope(scope competition.Scope) (competition.Scope, error) {
	scope.CompetitionCode = competition.NormalizeCode(scope.CompetitionCode)
	if err := scope.Validate(); err != nil {
		return competition.Scope{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return scope, nil
}

func factsUpToRound(facts []leaguestanding.TeamMatchFact, round int) []leaguestanding.TeamMatchFact {
	out := make([]leaguestanding.TeamMatchFact, 0, len(facts))
	for _, f := range facts {
		if f.Round <= round {
			out = append(out, f)
		}
	}
	return out
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
