package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sabq-ai/app-template-recommender/internal/content"
	"github.com/sabq-ai/app-template-recommender/internal/manifest"
	"github.com/sabq-ai/app-template-recommender/internal/models"
	"github.com/sabq-ai/app-template-recommender/internal/recommend"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest.yaml|manifest.json>",
		Short: "Valida um arquivo de manifesto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.NewFileSource(args[0]).Load(cmd.Context())
			if err != nil {
				failColor.Fprintln(cmd.ErrOrStderr(), "INVALID")
				return err
			}
			okColor.Fprint(cmd.OutOrStdout(), "OK")
			fmt.Fprintf(cmd.OutOrStdout(), " %d templates (version %q)\n", len(m.Templates), m.Version)
			return printTemplates(cmd.OutOrStdout(), m)
		},
	}
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <items.json|->",
		Short: "Calcula os sinais de conteúdo de uma lista de itens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd, args[0])
			if err != nil {
				return err
			}
			if err := recommend.ValidateItems(items); err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), recommend.Analyze(items))
		},
	}
}

func newRecommendCmd(a *app) *cobra.Command {
	var (
		manifestPath string
		limit        int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "recommend <items.json|->",
		Short: "Pontua os templates do manifesto para uma lista de itens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd, args[0])
			if err != nil {
				return err
			}

			var source manifest.Source = manifest.DefaultSource{}
			if manifestPath != "" {
				source = manifest.NewFileSource(manifestPath)
			}
			m, err := source.Load(cmd.Context())
			if err != nil {
				return err
			}

			recs, err := recommend.Recommend(items, m.Templates, models.RecommendOptions{Limit: limit})
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), models.RecommendResponse{
					Analysis:        recommend.Analyze(items),
					Recommendations: recs,
				})
			}
			return printRecommendations(cmd.OutOrStdout(), recs)
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "arquivo de manifesto (default: manifesto embutido)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "máximo de recomendações (0 = todas)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "saída em JSON")
	return cmd
}

func newPushCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "push <manifest.yaml|manifest.json>",
		Short: "Valida e publica um manifesto no Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := manifest.NewFileSource(args[0]).Load(cmd.Context())
			if err != nil {
				return err
			}

			rdb := redis.NewClient(&redis.Options{
				Addr:     a.settings.Redis.Addr,
				Password: a.settings.Redis.Password,
				DB:       a.settings.Redis.DB,
			})
			defer rdb.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			store := manifest.NewRedisStore(rdb, a.settings.Manifest.RedisKey)
			if err := store.Save(ctx, m); err != nil {
				return err
			}
			okColor.Fprint(cmd.OutOrStdout(), "PUSHED")
			fmt.Fprintf(cmd.OutOrStdout(), " %d templates -> %s (%s)\n", len(m.Templates), store.Key(), a.settings.Redis.Addr)
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "seed <name> <items.json|->",
		Short: "Cria ou substitui um dataset do playground",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readItems(cmd, args[1])
			if err != nil {
				return err
			}

			store, err := content.OpenDatasetStore(a.settings.Datasets.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			ds, err := store.SaveDataset(cmd.Context(), models.Dataset{
				Name:        args[0],
				Description: description,
				Items:       items,
			})
			if err != nil {
				return err
			}
			okColor.Fprint(cmd.OutOrStdout(), "SEEDED")
			fmt.Fprintf(cmd.OutOrStdout(), " %s: %d items\n", ds.Name, len(ds.Items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "descrição do dataset")
	return cmd
}

// readItems aceita uma lista JSON de itens ou um objeto {"items": [...]}
func readItems(cmd *cobra.Command, path string) ([]models.ContentItem, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao ler itens: %w", err)
	}

	var items []models.ContentItem
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Items []models.ContentItem `json:"items"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("erro ao interpretar itens: %w", err)
	}
	return wrapped.Items, nil
}
