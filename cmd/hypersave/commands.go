package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	hypersave "github.com/Hypersave-AI/hypersave-sdk"
)

// readContent returns the flag value or, for "-", stdin.
func readContent(cmd *cobra.Command, v string) (string, error) {
	if v != "-" {
		return v, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func newSaveCmd(g *globalFlags) *cobra.Command {
	var content, title, memType, source string
	var tags []string
	var async, wait bool

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save content as a new memory",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readContent(cmd, content)
			if err != nil {
				return err
			}
			req := hypersave.SaveRequest{Content: text, Title: title, Type: memType, Source: source, Tags: tags, Async: async || wait}
			if !wait {
				return run(cmd, g, "save", func(ctx context.Context, c *hypersave.Client) (*hypersave.SaveResponse, error) {
					return c.Save(ctx, req)
				})
			}
			return run(cmd, g, "save", func(ctx context.Context, c *hypersave.Client) (*hypersave.SaveStatusResponse, error) {
				saved, err := c.Save(ctx, req)
				if err != nil {
					return nil, err
				}
				return c.AwaitSave(ctx, saved.ID)
			})
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "Content to save, or - for stdin (required)")
	cmd.Flags().StringVar(&title, "title", "", "Title (optional)")
	cmd.Flags().StringVar(&memType, "type", "", "Memory type (optional)")
	cmd.Flags().StringVar(&source, "source", "", "Source label (optional)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag; repeatable")
	cmd.Flags().BoolVar(&async, "async", false, "Queue the save and return immediately")
	cmd.Flags().BoolVar(&wait, "wait", false, "Save asynchronously and wait until processing completes")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newGetCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get MEMORY_ID",
		Short: "Fetch a memory by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "get", func(ctx context.Context, c *hypersave.Client) (*hypersave.MemoryResponse, error) {
				return c.GetMemory(ctx, args[0])
			})
		},
	}
}

func newUpdateCmd(g *globalFlags) *cobra.Command {
	var content, title string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update MEMORY_ID",
		Short: "Update the content, title or tags of a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readContent(cmd, content)
			if err != nil {
				return err
			}
			return run(cmd, g, "update", func(ctx context.Context, c *hypersave.Client) (*hypersave.MemoryResponse, error) {
				return c.UpdateMemory(ctx, args[0], hypersave.UpdateMemoryRequest{Content: text, Title: title, Tags: tags})
			})
		},
	}
	cmd.Flags().StringVarP(&content, "content", "c", "", "New content, or - for stdin")
	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replacement tag; repeatable")
	return cmd
}

func newDeleteCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "delete MEMORY_ID",
		Short: "Delete a memory by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "delete", func(ctx context.Context, c *hypersave.Client) (*hypersave.DeleteResponse, error) {
				return c.DeleteMemory(ctx, args[0])
			})
		},
	}
}

func newListCmd(g *globalFlags) *cobra.Command {
	var limit, offset int
	var memType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored memories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "list", func(ctx context.Context, c *hypersave.Client) (*hypersave.ListMemoriesResponse, error) {
				return c.ListMemories(ctx, hypersave.ListMemoriesRequest{Limit: limit, Offset: offset, Type: memType})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Max rows")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().StringVar(&memType, "type", "", "Only this memory type")
	return cmd
}

func newAskCmd(g *globalFlags) *cobra.Command {
	var maxSources int

	cmd := &cobra.Command{
		Use:   "ask QUESTION...",
		Short: "Answer a question from stored memories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			return run(cmd, g, "ask", func(ctx context.Context, c *hypersave.Client) (*hypersave.AskResponse, error) {
				return c.Ask(ctx, hypersave.AskRequest{Query: q, MaxSources: maxSources, IncludeSources: true})
			})
		},
	}
	cmd.Flags().IntVar(&maxSources, "max-sources", 5, "Maximum cited sources")
	return cmd
}

func newSearchCmd(g *globalFlags) *cobra.Command {
	var limit int
	var chunks bool

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Semantic search over memories, or over ingested chunks with --chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			if chunks {
				return run(cmd, g, "search_chunks", func(ctx context.Context, c *hypersave.Client) (*hypersave.ChunkSearchResponse, error) {
					return c.SearchChunks(ctx, hypersave.ChunkSearchRequest{Query: q, Limit: limit})
				})
			}
			return run(cmd, g, "search", func(ctx context.Context, c *hypersave.Client) (*hypersave.SearchResponse, error) {
				return c.Search(ctx, hypersave.SearchRequest{Query: q, Limit: limit})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of results")
	cmd.Flags().BoolVar(&chunks, "chunks", false, "Search ingested document chunks instead of memories")
	return cmd
}

func newProfileCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the learned profile of the user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "profile", func(ctx context.Context, c *hypersave.Client) (*hypersave.ProfileResponse, error) {
				return c.GetProfile(ctx)
			})
		},
	}
}

func newRemindCmd(g *globalFlags) *cobra.Command {
	var in time.Duration
	var recurrence string

	cmd := &cobra.Command{
		Use:   "remind MESSAGE...",
		Short: "Schedule a reminder, or list reminders when no message is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return run(cmd, g, "list_reminders", func(ctx context.Context, c *hypersave.Client) (*hypersave.RemindersResponse, error) {
					return c.ListReminders(ctx)
				})
			}
			req := hypersave.RemindRequest{Message: strings.Join(args, " "), Recurrence: recurrence}
			if in > 0 {
				at := time.Now().Add(in).UTC()
				req.RemindAt = &at
			}
			return run(cmd, g, "remind", func(ctx context.Context, c *hypersave.Client) (*hypersave.ReminderResponse, error) {
				return c.Remind(ctx, req)
			})
		},
	}
	cmd.Flags().DurationVar(&in, "in", 0, "Fire after this delay, e.g. 2h")
	cmd.Flags().StringVar(&recurrence, "recurrence", "", "Recurrence rule, e.g. daily")
	return cmd
}

func newUsageCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "usage",
		Short: "Show plan usage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "usage", func(ctx context.Context, c *hypersave.Client) (*hypersave.UsageResponse, error) {
				return c.GetUsage(ctx)
			})
		},
	}
}

func newHealthCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Probe the service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "health", func(ctx context.Context, c *hypersave.Client) (*hypersave.HealthResponse, error) {
				return c.Health(ctx)
			})
		},
	}
}

func newIngestCmd(g *globalFlags) *cobra.Command {
	var file, url, title, mimeType string
	var chunkSize, chunkOverlap int
	var extract, wait bool

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest a document from --file or --url",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := hypersave.IngestRequest{URL: url, Title: title, MimeType: mimeType, ChunkSize: chunkSize, ChunkOverlap: chunkOverlap, ExtractEntities: extract}
			if file != "" {
				b, err := readFile(cmd, file)
				if err != nil {
					return err
				}
				req.Content = b
			}
			if !wait {
				return run(cmd, g, "ingest", func(ctx context.Context, c *hypersave.Client) (*hypersave.IngestResponse, error) {
					return c.Ingest(ctx, req)
				})
			}
			return run(cmd, g, "ingest", func(ctx context.Context, c *hypersave.Client) (*hypersave.IngestStatusResponse, error) {
				job, err := c.Ingest(ctx, req)
				if err != nil {
					return nil, err
				}
				return c.AwaitIngest(ctx, job.JobID)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path of the document, or - for stdin")
	cmd.Flags().StringVar(&url, "url", "", "URL of the document")
	cmd.Flags().StringVar(&title, "title", "", "Title (optional)")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "MIME type of the content")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Chunk size in tokens")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 0, "Chunk overlap in tokens")
	cmd.Flags().BoolVar(&extract, "extract-entities", false, "Run entity extraction on the chunks")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until ingestion completes")
	cmd.MarkFlagsMutuallyExclusive("file", "url")
	return cmd
}

func readFile(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		return readContent(cmd, "-")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func newIngestStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest-status JOB_ID",
		Short: "Show the progress of an ingestion job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, g, "ingest_status", func(ctx context.Context, c *hypersave.Client) (*hypersave.IngestStatusResponse, error) {
				return c.GetIngestStatus(ctx, args[0])
			})
		},
	}
}

func newExtractCmd(g *globalFlags) *cobra.Command {
	var types []string
	var save bool

	cmd := &cobra.Command{
		Use:   "extract TEXT...",
		Short: "Extract entities and relations from text (- reads stdin)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readContent(cmd, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return run(cmd, g, "extract", func(ctx context.Context, c *hypersave.Client) (*hypersave.ExtractEntitiesResponse, error) {
				return c.ExtractEntities(ctx, hypersave.ExtractEntitiesRequest{Text: text, Types: types, Save: save})
			})
		},
	}
	cmd.Flags().StringSliceVar(&types, "type", nil, "Entity type to keep; repeatable")
	cmd.Flags().BoolVar(&save, "save", false, "Store the entities in the user's graph")
	return cmd
}

func newQueryCmd(g *globalFlags) *cobra.Command {
	var mode string
	var limit int

	cmd := &cobra.Command{
		Use:   "query QUERY...",
		Short: "Run a structured query over memories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			return run(cmd, g, "query", func(ctx context.Context, c *hypersave.Client) (*hypersave.QueryResponse, error) {
				return c.Query(ctx, hypersave.QueryRequest{Query: q, Mode: mode, Limit: limit})
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "", "Query mode understood by the service")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of results")
	return cmd
}

func newGraphCmd(g *globalFlags) *cobra.Command {
	var depth, limit int

	cmd := &cobra.Command{
		Use:   "graph [ENTITY]",
		Short: "Show the knowledge graph, optionally around one entity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := hypersave.GraphRequest{Depth: depth, Limit: limit}
			if len(args) == 1 {
				req.Entity = args[0]
			}
			return run(cmd, g, "graph", func(ctx context.Context, c *hypersave.Client) (*hypersave.GraphResponse, error) {
				return c.GetGraph(ctx, req)
			})
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "Traversal depth")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max nodes")
	return cmd
}
