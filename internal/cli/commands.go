package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/terraincognita07/screenbattle/internal/db"
	"github.com/terraincognita07/screenbattle/internal/models"
	"github.com/terraincognita07/screenbattle/internal/services"
	"go.uber.org/zap"
)

type documentWriter interface {
	Write(ctx context.Context, document models.Document) services.WriteResult
}

func RunInitCommand(store db.Store, logger *zap.Logger, out io.Writer) error {
	existed, err := store.Exists()
	if err != nil {
		return fmt.Errorf("check store: %w", err)
	}
	if err := db.EnsureInitialized(store, logger); err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}

	if existed {
		fmt.Fprintln(out, "Store already initialized, nothing to do.")
		return nil
	}
	fmt.Fprintln(out, "✅ Store initialized with the default players")
	return nil
}

func RunExportCommand(store db.Store, out io.Writer) error {
	document, err := store.Load()
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}
	content, err := db.EncodeDocument(document)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if _, err := out.Write(content); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// RunImportCommand replaces the stored document with one read from in. The
// queue belongs to this process only, so stop the server before importing.
func RunImportCommand(ctx context.Context, writer documentWriter, in io.Reader, out io.Writer) error {
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read import: %w", err)
	}
	document, err := db.DecodeDocument(content)
	if err != nil {
		return fmt.Errorf("decode import: %w", err)
	}

	result := writer.Write(ctx, document)
	if !result.OK() {
		return fmt.Errorf("save import: %w", result.Err)
	}
	fmt.Fprintf(out, "✅ Imported %d users (job %s)\n", len(document.Users), result.JobID)
	return nil
}

func RunRecomputeCommand(ctx context.Context, game *services.GameService, out io.Writer) error {
	users, err := game.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("recompute points: %w", err)
	}

	userIDs := make([]string, 0, len(users))
	for userID := range users {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		fmt.Fprintf(out, "%s\t%d\n", userID, users[userID].Points)
	}
	return nil
}
