package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/kuitang/crm-notes/internal/errs"
	"github.com/kuitang/crm-notes/internal/notebody"
	"github.com/kuitang/crm-notes/internal/summaries"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler implements MCP tool call handling.
type Handler struct {
	svc *summaries.Service
}

// NewHandler creates a new MCP handler backed by the summaries service.
func NewHandler(svc *summaries.Service) *Handler {
	return &Handler{svc: svc}
}

// createToolHandler returns a tool handler function for the given tool name.
func (h *Handler) createToolHandler(name string) func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, args map[string]any) (*mcp.CallToolResult, any, error) {
		result, err := h.HandleToolCall(ctx, name, args)
		return result, nil, err
	}
}

// HandleToolCall routes tool calls to appropriate handlers. Malformed
// arguments surface as protocol-level errors; every other failure is
// converted into an IsError tool result with a readable message.
func (h *Handler) HandleToolCall(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	switch name {
	case "summary_create":
		return h.handleSummaryCreate(ctx, arguments)
	case "summary_list":
		return h.handleSummaryList(ctx, arguments)
	case "summary_update":
		return h.handleSummaryUpdate(ctx, arguments)
	case "summary_delete":
		return h.handleSummaryDelete(ctx, arguments)
	default:
		return newToolResultError(fmt.Sprintf("unknown tool: %s", name)), nil
	}
}

// newToolResultText creates a successful tool result with text content.
func newToolResultText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

// newToolResultError creates a tool result indicating an error.
func newToolResultError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: message},
		},
		IsError: true,
	}
}

func marshalToolJSON(value any) string {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response","detail":%q}`, err.Error())
	}
	return string(data)
}

// decodeToolArgs strictly decodes tool arguments into a typed struct.
// Unknown fields are rejected so that a misspelled filter fails loudly
// instead of silently matching everything.
func decodeToolArgs(args map[string]any, out any) error {
	if args == nil {
		args = map[string]any{}
	}
	data, err := json.Marshal(args)
	if err != nil {
		return errs.Wrap(errs.InvalidArgument, "invalid tool arguments", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return errs.Wrap(errs.InvalidArgument, fmt.Sprintf("invalid tool arguments: %v", err), err)
	}
	return nil
}

type timeRangeArgs struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type criteriaArgs struct {
	Date      string         `json:"date,omitempty"`
	DayOfWeek string         `json:"day_of_week,omitempty"`
	TimeRange *timeRangeArgs `json:"time_range,omitempty"`
	Query     string         `json:"query,omitempty"`
	Limit     *int           `json:"limit,omitempty"`
}

func (a criteriaArgs) criteria() (summaries.Criteria, error) {
	c := summaries.Criteria{
		Date:      a.Date,
		DayOfWeek: a.DayOfWeek,
		Query:     a.Query,
		Limit:     a.Limit,
	}
	if a.TimeRange != nil {
		if a.TimeRange.Start == "" || a.TimeRange.End == "" {
			return summaries.Criteria{}, errs.New(errs.InvalidArgument, "time_range requires both start and end as HH:MM strings")
		}
		c.TimeStart = a.TimeRange.Start
		c.TimeEnd = a.TimeRange.End
	}
	return c, nil
}

func (h *Handler) handleSummaryCreate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in struct {
		Title   string `json:"title"`
		Summary string `json:"summary"`
		Author  string `json:"author"`
	}
	if err := decodeToolArgs(args, &in); err != nil {
		return nil, err
	}

	id, err := h.svc.Create(ctx, summaries.CreateParams{
		Title:   in.Title,
		Summary: in.Summary,
		Author:  in.Author,
	})
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	result := struct {
		ID string `json:"id"`
	}{ID: id}
	return newToolResultText(marshalToolJSON(result)), nil
}

func (h *Handler) handleSummaryList(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in criteriaArgs
	if err := decodeToolArgs(args, &in); err != nil {
		return nil, err
	}
	criteria, err := in.criteria()
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	items, err := h.svc.List(ctx, criteria)
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	response := struct {
		Summaries  []summaries.ListItem `json:"summaries"`
		TotalCount int                  `json:"total_count"`
	}{
		Summaries:  items,
		TotalCount: len(items),
	}
	return newToolResultText(marshalToolJSON(response)), nil
}

func (h *Handler) handleSummaryUpdate(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in struct {
		ID      string `json:"id,omitempty"`
		Query   string `json:"query,omitempty"`
		Title   string `json:"title,omitempty"`
		Summary string `json:"summary,omitempty"`
		Author  string `json:"author,omitempty"`
	}
	if err := decodeToolArgs(args, &in); err != nil {
		return nil, err
	}

	id, err := h.svc.Update(ctx, summaries.UpdateParams{
		ID:    in.ID,
		Query: in.Query,
		Fields: notebody.Fields{
			Title:   in.Title,
			Summary: in.Summary,
			Author:  in.Author,
		},
	})
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	result := struct {
		ID string `json:"id"`
	}{ID: id}
	return newToolResultText(marshalToolJSON(result)), nil
}

func (h *Handler) handleSummaryDelete(ctx context.Context, args map[string]any) (*mcp.CallToolResult, error) {
	var in struct {
		ID string `json:"id,omitempty"`
		criteriaArgs
	}
	if err := decodeToolArgs(args, &in); err != nil {
		return nil, err
	}
	criteria, err := in.criteria()
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	id, err := h.svc.Delete(ctx, in.ID, criteria)
	if err != nil {
		return newToolResultError(errs.MessageOf(err)), nil
	}

	result := struct {
		ID string `json:"id"`
	}{ID: id}
	return newToolResultText(marshalToolJSON(result)), nil
}
