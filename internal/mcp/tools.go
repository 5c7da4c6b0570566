// ABOUTME: MCP tool implementations for the training log.
// ABOUTME: Logging tools write through the repository; trend tools read analytics.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/tracklog/tracklog/internal/models"
)

func (s *Server) registerTools() {
	// log_sprint_rep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_sprint_rep",
		Description: "Record a timed sprint rep under a sprint set",
	}, s.handleLogSprintRep)

	// log_lift_rep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_lift_rep",
		Description: "Record a lift rep, optionally with bar peak velocity",
	}, s.handleLogLiftRep)

	// log_race
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_race",
		Description: "Record a race result under a meet",
	}, s.handleLogRace)

	// list_sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List recent training sessions, optionally filtered by kind",
	}, s.handleListSessions)

	// get_session
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_session",
		Description: "Get a session with all its sets, reps, races, and entries",
	}, s.handleGetSession)

	// sprint_trend
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sprint_trend",
		Description: "Sprint trend at a distance: best time and rolling averages",
	}, s.handleSprintTrend)

	// lift_trend
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "lift_trend",
		Description: "Lift trend for an exercise: max load and velocity by load",
	}, s.handleLiftTrend)

	// weekly_volume
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_volume",
		Description: "Weekly sprint/tempo volume with week-over-week change",
	}, s.handleWeeklyVolume)

	// get_insights
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_insights",
		Description: "Current insights: PRs, stagnation, and milestones",
	}, s.handleGetInsights)
}

// Tool input/output types

type logSprintRepInput struct {
	SetID     string  `json:"set_id" jsonschema:"description=Sprint set ID or prefix,required"`
	Distance  float64 `json:"distance" jsonschema:"description=Distance in meters,required"`
	TimeSec   float64 `json:"time_sec" jsonschema:"description=Time in seconds,required"`
	Timing    string  `json:"timing,omitempty" jsonschema:"description=Timing precision (hand or fat), defaults to hand"`
	RestSec   int     `json:"rest_sec,omitempty" jsonschema:"description=Rest after the rep in seconds (default 180)"`
	FlyIn     int     `json:"fly_in,omitempty" jsonschema:"description=Fly-in distance (10, 20, or 30) for fly reps"`
	Intensity int     `json:"intensity,omitempty" jsonschema:"description=Intensity percentage (0-100)"`
	WorkType  string  `json:"work_type,omitempty" jsonschema:"description=Work type (sprint or tempo), defaults to sprint"`
}

type repOutput struct {
	ID      string `json:"id"`
	Seq     int    `json:"seq"`
	Message string `json:"message"`
}

type logLiftRepInput struct {
	SetID        string  `json:"set_id" jsonschema:"description=Lift set ID or prefix,required"`
	PeakVelocity float64 `json:"peak_velocity,omitempty" jsonschema:"description=Bar peak velocity in m/s; omit if not measured"`
}

type logRaceInput struct {
	MeetID   string  `json:"meet_id" jsonschema:"description=Meet session ID or prefix,required"`
	Distance float64 `json:"distance" jsonschema:"description=Race distance in meters,required"`
	Round    string  `json:"round" jsonschema:"description=Round (heat, semi, or final),required"`
	TimeSec  float64 `json:"time_sec" jsonschema:"description=Official time in seconds,required"`
	Wind     float64 `json:"wind,omitempty" jsonschema:"description=Wind reading in m/s (outdoor meets only)"`
	HasWind  bool    `json:"has_wind,omitempty" jsonschema:"description=Set true when a wind reading is supplied"`
	Place    int     `json:"place,omitempty" jsonschema:"description=Finishing place"`
}

type listSessionsInput struct {
	Kind  string `json:"kind,omitempty" jsonschema:"description=Filter by kind (sprint, lift, meet, auxiliary)"`
	Limit int    `json:"limit,omitempty" jsonschema:"description=Max results (default 20)"`
}

type getSessionInput struct {
	ID string `json:"id" jsonschema:"description=Session ID or prefix,required"`
}

type sprintTrendInput struct {
	Distance float64 `json:"distance" jsonschema:"description=Sprint distance in meters,required"`
}

type liftTrendInput struct {
	Exercise string `json:"exercise" jsonschema:"description=Exercise name,required"`
}

type weeklyVolumeInput struct {
	Weeks int `json:"weeks,omitempty" jsonschema:"description=Number of recent ISO weeks (default 4)"`
}

// Tool handlers

func (s *Server) handleLogSprintRep(ctx context.Context, req *mcp.CallToolRequest, input logSprintRepInput) (*mcp.CallToolResult, repOutput, error) {
	set, err := s.repo.GetSprintSet(input.SetID)
	if err != nil {
		return nil, repOutput{}, fmt.Errorf("sprint set not found: %s", input.SetID)
	}

	r := models.NewSprintRep(set.ID, input.Distance, input.TimeSec)
	if input.Timing != "" {
		r.WithTiming(models.Timing(input.Timing))
	}
	if input.RestSec > 0 {
		r.WithRest(input.RestSec)
	}
	if input.FlyIn > 0 {
		r.WithFly(input.FlyIn)
	}
	if input.Intensity > 0 {
		r.WithIntensity(input.Intensity)
	}
	if input.WorkType != "" {
		r.WithWorkType(models.WorkType(input.WorkType))
	}

	if err := s.repo.AddSprintRep(r); err != nil {
		return nil, repOutput{}, fmt.Errorf("failed to log sprint rep: %w", err)
	}

	return nil, repOutput{
		ID:      r.ID.String()[:8],
		Seq:     r.Seq,
		Message: fmt.Sprintf("Logged %gm in %.2fs (rep %d, ID: %s)", r.Distance, r.TimeSec, r.Seq, r.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogLiftRep(ctx context.Context, req *mcp.CallToolRequest, input logLiftRepInput) (*mcp.CallToolResult, repOutput, error) {
	set, err := s.repo.GetLiftSet(input.SetID)
	if err != nil {
		return nil, repOutput{}, fmt.Errorf("lift set not found: %s", input.SetID)
	}

	r := models.NewLiftRep(set.ID)
	if input.PeakVelocity > 0 {
		r.WithVelocity(input.PeakVelocity)
	}

	if err := s.repo.AddLiftRep(r); err != nil {
		return nil, repOutput{}, fmt.Errorf("failed to log lift rep: %w", err)
	}

	msg := fmt.Sprintf("Logged rep %d of %s (ID: %s)", r.Seq, set.Exercise, r.ID.String()[:8])
	if r.PeakVelocity != nil {
		msg = fmt.Sprintf("Logged rep %d of %s at %.2f m/s (ID: %s)", r.Seq, set.Exercise, *r.PeakVelocity, r.ID.String()[:8])
	}
	return nil, repOutput{ID: r.ID.String()[:8], Seq: r.Seq, Message: msg}, nil
}

func (s *Server) handleLogRace(ctx context.Context, req *mcp.CallToolRequest, input logRaceInput) (*mcp.CallToolResult, repOutput, error) {
	meet, err := s.repo.GetSession(input.MeetID)
	if err != nil {
		return nil, repOutput{}, fmt.Errorf("meet not found: %s", input.MeetID)
	}
	if !models.IsValidRound(input.Round) {
		return nil, repOutput{}, fmt.Errorf("unknown round: %s", input.Round)
	}

	r := models.NewRace(meet.ID, input.Distance, models.Round(input.Round), input.TimeSec)
	if input.HasWind || input.Wind != 0 {
		r.WithWind(input.Wind)
	}
	if input.Place > 0 {
		r.WithPlace(input.Place)
	}

	if err := s.repo.AddRace(r); err != nil {
		return nil, repOutput{}, fmt.Errorf("failed to log race: %w", err)
	}

	return nil, repOutput{
		ID:      r.ID.String()[:8],
		Seq:     r.Seq,
		Message: fmt.Sprintf("Logged %gm %s in %.2fs (ID: %s)", r.Distance, r.Round, r.TimeSec, r.ID.String()[:8]),
	}, nil
}

func (s *Server) handleListSessions(ctx context.Context, req *mcp.CallToolRequest, input listSessionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	var kind *models.SessionKind
	if input.Kind != "" {
		if !models.IsValidSessionKind(input.Kind) {
			return nil, nil, fmt.Errorf("unknown session kind: %s", input.Kind)
		}
		k := models.SessionKind(input.Kind)
		kind = &k
	}

	sessions, err := s.repo.ListSessions(kind, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		return nil, map[string]any{"message": "No sessions found."}, nil
	}
	return nil, sessions, nil
}

func (s *Server) handleGetSession(ctx context.Context, req *mcp.CallToolRequest, input getSessionInput) (*mcp.CallToolResult, any, error) {
	sess, err := s.repo.GetSessionWithChildren(input.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("session not found: %s", input.ID)
	}
	return nil, sess, nil
}

func (s *Server) handleSprintTrend(ctx context.Context, req *mcp.CallToolRequest, input sprintTrendInput) (*mcp.CallToolResult, any, error) {
	trend, err := s.engine.SprintDistanceTrend(input.Distance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute sprint trend: %w", err)
	}
	if len(trend.Points) == 0 {
		return nil, map[string]any{"message": fmt.Sprintf("No reps recorded at %gm.", input.Distance)}, nil
	}
	return nil, trend, nil
}

func (s *Server) handleLiftTrend(ctx context.Context, req *mcp.CallToolRequest, input liftTrendInput) (*mcp.CallToolResult, any, error) {
	trend, err := s.engine.LiftExerciseTrend(input.Exercise)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute lift trend: %w", err)
	}
	if trend.MaxLoad == 0 {
		return nil, map[string]any{"message": fmt.Sprintf("No sets recorded for %s.", input.Exercise)}, nil
	}
	return nil, trend, nil
}

func (s *Server) handleWeeklyVolume(ctx context.Context, req *mcp.CallToolRequest, input weeklyVolumeInput) (*mcp.CallToolResult, any, error) {
	weeks, err := s.engine.WeeklyVolume(input.Weeks)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compute weekly volume: %w", err)
	}
	return nil, weeks, nil
}

func (s *Server) handleGetInsights(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	insights, err := s.engine.Detect()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to detect insights: %w", err)
	}
	if len(insights) == 0 {
		return nil, map[string]any{"message": "No insights right now. Keep logging."}, nil
	}
	return nil, insights, nil
}
