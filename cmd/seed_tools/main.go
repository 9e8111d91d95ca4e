// seed_tools carga un catálogo de herramientas desde CSV (name,quantity) en el almacén configurado.
//
// Uso: go run ./cmd/seed_tools [--encoding latin1] [--comma ';'] herramientas.csv
// Las filas inválidas se omiten y se informan al final.
package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jhoicas/herramientas-api/internal/infrastructure/catalog"
	"github.com/jhoicas/herramientas-api/internal/infrastructure/storage"
	"github.com/jhoicas/herramientas-api/pkg/config"
	"github.com/jhoicas/herramientas-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "seed_tools <archivo.csv>",
		Short:        "Importa herramientas desde un CSV name,quantity",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runSeed,
	}
	cmd.Flags().String("encoding", catalog.EncodingUTF8, "Codificación del archivo: utf8 | latin1 | windows1252")
	cmd.Flags().String("comma", ",", "Separador de columnas")
	cmd.Flags().Bool("reset", false, "Vaciar el almacén antes de importar")
	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	encoding, _ := cmd.Flags().GetString("encoding")
	comma, _ := cmd.Flags().GetString("comma")
	reset, _ := cmd.Flags().GetBool("reset")

	sep, size := utf8.DecodeRuneInString(comma)
	if size == 0 || size != len(comma) {
		return fmt.Errorf("--comma debe ser un único carácter, recibido %q", comma)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: cmd.ErrOrStderr()})

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	ctx := cmd.Context()
	store, err := storage.Open(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer store.Close()

	uc := store.ToolUseCase()
	if reset {
		if err := uc.ResetStore(ctx); err != nil {
			return fmt.Errorf("reiniciar almacén: %w", err)
		}
		log.Warn().Msg("almacén reiniciado antes de importar")
	}

	res, err := catalog.Import(ctx, f, catalog.Options{Encoding: encoding, Comma: sep}, uc)
	if err != nil {
		return err
	}
	if res.Skipped > 0 {
		log.Warn().Ints("lines", res.SkippedLines).Int("skipped", res.Skipped).Msg("filas omitidas")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Importadas %d herramientas, %d filas omitidas\n", res.Imported, res.Skipped)
	return nil
}
