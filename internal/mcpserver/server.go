// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes MindFlow tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/wellness"
)

// Server wraps the MCP server with MindFlow tools.
type Server struct {
	mcp *server.MCPServer
	svc *wellness.Service
}

// New creates a new MCP server with all MindFlow tools registered.
func New(svc *wellness.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"MindFlow",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("log_mood",
		mcp.WithDescription("Record a mood journal entry in the user's voice. "+
			"The server analyzes sentiment after storing; do not include ratings in the text. "+
			"Read the journaling guide first via the get_journaling_guide tool or the "+
			"mindflow://journaling-guide resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Journal text describing how the user feels")),
	), s.logMood)

	s.mcp.AddTool(mcp.NewTool("list_mood_entries",
		mcp.WithDescription("List recent mood entries, newest first."),
		mcp.WithNumber("limit", mcp.Description("Optional maximum number of entries (default 50)")),
	), s.listMoodEntries)

	s.mcp.AddTool(mcp.NewTool("start_focus_session",
		mcp.WithDescription("Start a new focus session. Any session already running is closed first."),
	), s.startFocusSession)

	s.mcp.AddTool(mcp.NewTool("end_focus_session",
		mcp.WithDescription("End the active focus session and record its focused/distracted minutes. "+
			"Fails when no session is running."),
	), s.endFocusSession)

	s.mcp.AddTool(mcp.NewTool("get_focus_stats",
		mcp.WithDescription("Summarize today's focus sessions: focused minutes, distracted minutes, session count."),
	), s.getFocusStats)

	s.mcp.AddTool(mcp.NewTool("get_weekly_trends",
		mcp.WithDescription("Get the trailing week of health metrics as per-day trend points, oldest first."),
	), s.getWeeklyTrends)

	s.mcp.AddTool(mcp.NewTool("get_stress_analysis",
		mcp.WithDescription("Analyze recent metrics, moods, and focus patterns into a stress score with recommendations."),
	), s.getStressAnalysis)

	s.mcp.AddTool(mcp.NewTool("list_activities",
		mcp.WithDescription("List all mindfulness activities with their completion state."),
	), s.listActivities)

	s.mcp.AddTool(mcp.NewTool("complete_activity",
		mcp.WithDescription("Mark a mindfulness activity as completed."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Activity id from list_activities")),
	), s.completeActivity)

	s.mcp.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("Read the current user settings."),
	), s.getSettings)

	s.mcp.AddTool(mcp.NewTool("get_journaling_guide",
		mcp.WithDescription("Returns the MindFlow journaling guide. "+
			"Call this before logging moods to phrase entries correctly."),
	), s.getJournalingGuide)

	// Resource: journaling guide.
	s.mcp.AddResource(
		mcp.NewResource("mindflow://journaling-guide", "Journaling Guide",
			mcp.WithResourceDescription("How to phrase mood entries and interpret wellness data."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalingGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) logMood(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	entry, err := s.svc.CreateMoodEntry(ctx, models.InsertMoodEntry{Content: content})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entry)
}

func (s *Server) listMoodEntries(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := 0
	if n, err := req.RequireInt("limit"); err == nil {
		limit = n
	}
	entries, err := s.svc.MoodEntries(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(entries)
}

func (s *Server) startFocusSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.svc.StartFocus(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("started focus session %s at %s",
		sess.ID, sess.StartTime.Format("15:04:05"))), nil
}

func (s *Server) endFocusSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess, err := s.svc.EndFocus(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("ended focus session %s: %d min focused, %d min distracted",
		sess.ID, sess.FocusedMinutes, sess.DistractedMinutes)), nil
}

func (s *Server) getFocusStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.svc.FocusStats(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(stats)
}

func (s *Server) getWeeklyTrends(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	trends, err := s.svc.WeeklyTrends(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(trends)
}

func (s *Server) getStressAnalysis(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	analysis, err := s.svc.StressAnalysis(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(analysis)
}

func (s *Server) listActivities(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	activities, err := s.svc.Activities(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(activities)
}

func (s *Server) completeActivity(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	activity, err := s.svc.CompleteActivity(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("activity not found: %s", id)), nil
	}
	return jsonResult(activity)
}

func (s *Server) getSettings(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, err := s.svc.Settings(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(settings)
}

func (s *Server) getJournalingGuide(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JournalingGuide), nil
}

func (s *Server) readJournalingGuideResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "mindflow://journaling-guide",
			MIMEType: "text/markdown",
			Text:     JournalingGuide,
		},
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}
