/*
Package pipevar resolves ${name} and ${name|default} variable placeholders
in the templates of a SQL-oriented data pipeline: pipeline definitions,
connector configuration, and generated SQL.

# Overview

pipevar is a pure, synchronous substitution engine. It layers variable
sources by priority, parses templates into expressions, renders resolved
values for a target output context, and splices them back into strings,
mappings and sequences. It performs no I/O: configuration files, argv and
SQL execution belong to the surrounding tool.

The engine is built for embedding with:
  - A closed set of output contexts (text, SQL, expression evaluator)
    with exact quoting and escaping rules per context
  - A four-source priority merge (cli > profile > set > declared env)
    over a process-environment snapshot
  - A bounded fixed-point loop for self-referencing variable mappings
  - A size-bounded parse/substitution cache with hit/miss counters
  - OpenTelemetry metrics and tracing, structured logging via slog

# Basic Usage

Construct an engine from variable sources and substitute:

	cfg := resolve.VariableConfig{
	    CLI:     map[string]any{"env": "prod"},
	    Profile: map[string]any{"schema": "public", "table": "users"},
	}
	engine := pipevar.New(cfg)

	out, err := engine.SubstituteString(ctx,
	    "SELECT * FROM ${schema}.${table}", formatter.ContextText)
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(out) // "SELECT * FROM public.users"

Substitute walks structured data too, returning fresh containers:

	data := map[string]any{
	    "query":  "SELECT * FROM ${table}",
	    "params": []any{"${env}", 42},
	}
	result, err := engine.Substitute(ctx, data, formatter.ContextSQL)

# Output Contexts

The same value renders differently per consuming context:

	engine.SubstituteString(ctx, "${flag}", formatter.ContextText) // "true"
	engine.SubstituteString(ctx, "${flag}", formatter.ContextSQL)  // "true"
	engine.SubstituteString(ctx, "${flag}", formatter.ContextAST)  // "True"

A variable that resolves to nothing and has no default stays visible:
text keeps the placeholder, SQL renders NULL, AST renders None. Unresolved
variables never abort a pipeline; run Validate for diagnostics instead:

	res := engine.Validate("SELECT ${a}, ${c}")
	if !res.Valid {
	    for _, w := range res.Warnings {
	        fmt.Println(w) // did-you-mean suggestions
	    }
	}

# Environment Snapshot

The process environment is read once, at the engine's first resolution,
and cached for the engine's lifetime. Later environment changes are
invisible to an already-constructed engine. Callers that need a fresh
snapshot construct a new engine per logical unit of work.

# Self-Referencing Mappings

ResolveSelf substitutes a mapping against itself until a fixed point:

	vars := map[string]any{
	    "host": "localhost",
	    "url":  "${host}:${port}",
	    "port": 5432,
	}
	resolved, converged := engine.ResolveSelf(ctx, vars)

Cycles cannot hang: the loop is bounded (default 10 passes) and returns
the best-effort last result with converged=false.

# Thread Safety

  - Engine IS safe for concurrent use once constructed
  - Cache IS safe for concurrent use
  - VariableConfig and ResolvedSet are immutable after construction

# Subpackages

  - parser: ${name|default} expression tokenizer
  - formatter: per-context value rendering and the quote-balance heuristic
  - resolve: variable source priority merging
  - validate: missing-variable and default diagnostics
  - cache: bounded parse/substitution memoization
  - observability: logging, metrics, and tracing helpers
  - config: engine settings from YAML/JSON tool configuration
*/
package pipevar
