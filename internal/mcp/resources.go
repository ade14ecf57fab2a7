// ABOUTME: MCP resources for betterself.
// ABOUTME: Provides betterself://today and betterself://stats as JSON documents.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	todayURI = "betterself://today"
	statsURI = "betterself://stats"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         todayURI,
		Name:        "Today",
		Description: "Today's routines, tasks, habits with counts, daily challenge, TMI and progress",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statsURI,
		Name:        "Statistics",
		Description: "Summary cards, habit trend and streaks",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.begin()
	return jsonResource(todayURI, s.app.Daily.Snapshot())
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.begin()
	streaks := make([]streakOutput, 0)
	for _, m := range s.app.Streaks.List() {
		streaks = append(streaks, s.streakView(m))
	}
	return jsonResource(statsURI, map[string]any{
		"summary": s.app.Summary(),
		"history": s.app.Stats.History(),
		"streaks": streaks,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
