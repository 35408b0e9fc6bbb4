package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mindflow/mindflow/internal/models"
	"github.com/mindflow/mindflow/internal/store"
	"github.com/mindflow/mindflow/internal/testutil"
	"github.com/mindflow/mindflow/internal/wellness"
)

func testServer(t *testing.T) (*Server, *store.MemStore) {
	t.Helper()
	st := testutil.NewStore(t)
	svc := wellness.NewService(st, &testutil.StubProvider{}, nil)
	return New(svc), st
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so we invoke the
	// handler functions directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "log_mood":
		result, err = srv.logMood(ctx, req)
	case "list_mood_entries":
		result, err = srv.listMoodEntries(ctx, req)
	case "start_focus_session":
		result, err = srv.startFocusSession(ctx, req)
	case "end_focus_session":
		result, err = srv.endFocusSession(ctx, req)
	case "get_focus_stats":
		result, err = srv.getFocusStats(ctx, req)
	case "get_weekly_trends":
		result, err = srv.getWeeklyTrends(ctx, req)
	case "get_stress_analysis":
		result, err = srv.getStressAnalysis(ctx, req)
	case "list_activities":
		result, err = srv.listActivities(ctx, req)
	case "complete_activity":
		result, err = srv.completeActivity(ctx, req)
	case "get_settings":
		result, err = srv.getSettings(ctx, req)
	case "get_journaling_guide":
		result, err = srv.getJournalingGuide(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestLogMoodTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "log_mood", map[string]interface{}{
		"content": "feeling calm after a walk",
	})
	if r.IsError {
		t.Fatalf("log_mood failed: %s", resultText(r))
	}

	var entry models.MoodEntry
	if err := json.Unmarshal([]byte(resultText(r)), &entry); err != nil {
		t.Fatalf("result not JSON: %v", err)
	}
	if entry.Content != "feeling calm after a walk" {
		t.Errorf("content = %q", entry.Content)
	}
	if entry.Sentiment == nil {
		t.Error("sentiment not attached")
	}

	r = callTool(t, srv, "list_mood_entries", map[string]interface{}{})
	var entries []models.MoodEntry
	if err := json.Unmarshal([]byte(resultText(r)), &entries); err != nil {
		t.Fatalf("list result not JSON: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1", len(entries))
	}
}

func TestLogMoodToolRequiresContent(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "log_mood", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error for missing content")
	}
}

func TestFocusSessionTools(t *testing.T) {
	srv, _ := testServer(t)

	// Ending before starting reports the error through the result.
	r := callTool(t, srv, "end_focus_session", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected error when no session is active")
	}

	r = callTool(t, srv, "start_focus_session", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("start failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "started focus session") {
		t.Errorf("start result = %q", resultText(r))
	}

	r = callTool(t, srv, "end_focus_session", map[string]interface{}{})
	if r.IsError {
		t.Fatalf("end failed: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "min focused") {
		t.Errorf("end result = %q", resultText(r))
	}

	r = callTool(t, srv, "get_focus_stats", map[string]interface{}{})
	var stats models.FocusStats
	if err := json.Unmarshal([]byte(resultText(r)), &stats); err != nil {
		t.Fatalf("stats result not JSON: %v", err)
	}
	if stats.SessionsToday != 1 {
		t.Errorf("sessionsToday = %d, want 1", stats.SessionsToday)
	}
}

func TestWeeklyTrendsTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_weekly_trends", map[string]interface{}{})
	var trends []models.TrendPoint
	if err := json.Unmarshal([]byte(resultText(r)), &trends); err != nil {
		t.Fatalf("trends result not JSON: %v", err)
	}
	if len(trends) != 7 {
		t.Errorf("trends = %d, want 7", len(trends))
	}
}

func TestStressAnalysisTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_stress_analysis", map[string]interface{}{})
	var analysis models.StressAnalysis
	if err := json.Unmarshal([]byte(resultText(r)), &analysis); err != nil {
		t.Fatalf("analysis result not JSON: %v", err)
	}
	if analysis.Level == "" || analysis.Trend == "" {
		t.Errorf("analysis = %+v", analysis)
	}
}

func TestActivityTools(t *testing.T) {
	srv, st := testServer(t)

	r := callTool(t, srv, "list_activities", map[string]interface{}{})
	var activities []models.MindfulnessActivity
	if err := json.Unmarshal([]byte(resultText(r)), &activities); err != nil {
		t.Fatalf("list result not JSON: %v", err)
	}
	if len(activities) != 6 {
		t.Fatalf("activities = %d, want 6", len(activities))
	}

	r = callTool(t, srv, "complete_activity", map[string]interface{}{
		"id": activities[0].ID,
	})
	if r.IsError {
		t.Fatalf("complete failed: %s", resultText(r))
	}
	var completed models.MindfulnessActivity
	if err := json.Unmarshal([]byte(resultText(r)), &completed); err != nil {
		t.Fatalf("complete result not JSON: %v", err)
	}
	if !completed.IsCompleted {
		t.Error("activity not marked completed")
	}

	// Store reflects the change.
	got, err := st.ListMindfulnessActivities()
	if err != nil {
		t.Fatal(err)
	}
	if !got[0].IsCompleted {
		t.Error("completion not persisted")
	}

	r = callTool(t, srv, "complete_activity", map[string]interface{}{"id": "nope"})
	if !r.IsError {
		t.Error("expected error for unknown activity id")
	}
}

func TestGetSettingsTool(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_settings", map[string]interface{}{})
	var settings models.UserSettings
	if err := json.Unmarshal([]byte(resultText(r)), &settings); err != nil {
		t.Fatalf("settings result not JSON: %v", err)
	}
	if settings.Theme != "dark" {
		t.Errorf("theme = %q, want dark", settings.Theme)
	}
}

func TestJournalingGuide(t *testing.T) {
	srv, _ := testServer(t)

	r := callTool(t, srv, "get_journaling_guide", map[string]interface{}{})
	if !strings.Contains(resultText(r), "journal") && !strings.Contains(resultText(r), "Journal") {
		t.Errorf("guide text unexpected: %q", resultText(r))
	}

	contents, err := srv.readJournalingGuideResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("resource contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("resource contents type %T", contents[0])
	}
	if tc.URI != "mindflow://journaling-guide" || tc.Text != JournalingGuide {
		t.Error("resource does not serve the journaling guide")
	}
}
