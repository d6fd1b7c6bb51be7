package main

import (
	"flag"
	"fmt"
	"os"
)

// runInfo handles the "jjdivide info" subcommand: it prints the server's
// tool surface and MCP client configuration snippets.
func runInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	claude := fs.Bool("claude", false, "show Claude Desktop MCP client configuration")
	cursor := fs.Bool("cursor", false, "show Cursor MCP client configuration")
	fs.Parse(args)

	switch {
	case *claude:
		printClientConfig("Claude Desktop", "claude_desktop_config.json")
	case *cursor:
		printClientConfig("Cursor", ".cursor/mcp.json")
	default:
		printGeneralInfo()
	}
}

func printGeneralInfo() {
	fmt.Fprintf(os.Stdout, `jjdivide %s — semantic commit division for Jujutsu

jjdivide is a Model Context Protocol (MCP) server that analyzes a Jujutsu
(jj) revision range, groups the diff into semantically coherent commits,
and proposes conventional-commit messages for each group. It also
coordinates proposals across multiple dependent repositories.

TRANSPORT MODES

  stdio (default)
    Communicates over stdin/stdout using JSON-RPC 2.0. Used when launched
    as a subprocess by an MCP client.

  http
    Runs as a standalone HTTP server (MCP Streamable HTTP transport,
    spec 2025-03-26). Unauthenticated; intended for a trusted local agent.

    Endpoint:      POST /mcp
    Health check:  GET /health
    Default port:  21452

TOOLS (11)

  Division (3):   division_propose, division_apply_strategy, division_realize
  Repository (6): repo_add, repo_remove, repo_list, repo_dependency_order,
                  repo_save, repo_load
  Multi-repo (2): multirepo_analyze, multirepo_propose

CLIENT CONFIGURATION

  To see configuration for a specific MCP client, run:

    jjdivide info --claude     Claude Desktop (claude_desktop_config.json)
    jjdivide info --cursor     Cursor (.cursor/mcp.json)
`, Version)
}

func printClientConfig(client, file string) {
	fmt.Fprintf(os.Stdout, `%s — stdio mode

Add to %s:

{
  "mcpServers": {
    "jjdivide": {
      "command": "jjdivide"
    }
  }
}

jjdivide runs as a subprocess against whichever jj repository its tools
are pointed at — no server or token needed.
`, client, file)
}
