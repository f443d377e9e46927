package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Health check - responds with pong or echoes input",
	}, NewPingHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draw_pair",
		Description: "Draw a random pair of notes from the vault, avoiding recently shown ones",
	}, NewDrawPairHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "swap_note",
		Description: "Replace one side of the current pair with a fresh candidate",
	}, NewSwapNoteHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "record_spark",
		Description: "Record a reflection connecting the current pair as a new spark note",
	}, NewRecordSparkHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "skip_pair",
		Description: "Dismiss the current pair without recording a reflection",
	}, NewSkipPairHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pair_history",
		Description: "List recent pair outcomes, newest first",
	}, NewPairHistoryHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "vault_stats",
		Description: "Vault index counts and in-process operation metrics",
	}, NewVaultStatsHandler(deps))
}
