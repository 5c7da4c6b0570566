// ABOUTME: MCP resource implementations for the training log.
// ABOUTME: Provides tracklog://recent and tracklog://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// tracklog://recent - last sessions across all kinds
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "tracklog://recent",
		Name:        "Recent Training Sessions",
		Description: "Last 10 training sessions across all kinds",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// tracklog://summary - trend summaries plus current insights
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "tracklog://summary",
		Name:        "Training Summary Dashboard",
		Description: "Per-distance and per-exercise trend rows, weekly volume, and insights",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sessions, err := s.repo.ListSessions(nil, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	result := map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "tracklog://recent",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sprintRows, err := s.engine.SprintSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to compute sprint summary: %w", err)
	}
	liftRows, err := s.engine.LiftSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to compute lift summary: %w", err)
	}
	weeks, err := s.engine.WeeklyVolume(4)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekly volume: %w", err)
	}
	insights, err := s.engine.Detect()
	if err != nil {
		return nil, fmt.Errorf("failed to detect insights: %w", err)
	}

	result := map[string]any{
		"generated_at":  time.Now().Format(time.RFC3339),
		"sprint":        sprintRows,
		"lift":          liftRows,
		"weekly_volume": weeks,
		"insights":      insights,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "tracklog://summary",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
