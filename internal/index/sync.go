package index

import (
	"log/slog"

	"github.com/starford/vaultlink/internal/checksum"
	"github.com/starford/vaultlink/internal/models"
	"github.com/starford/vaultlink/internal/parser"
	"github.com/starford/vaultlink/internal/storage"
)

// Sync walks the vault and brings the index up to date:
//   - new/changed files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db ReferenceableIndex, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}

		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, m.Path, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", m.Path), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteNote(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	logger.Info("sync: complete", slog.Int("notes", len(metas)))
	return nil
}

// IndexFile parses data and upserts the note with its referenceable nodes.
func IndexFile(db ReferenceableIndex, path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}

	tags := res.Tags
	if tags == nil {
		tags = []string{}
	}
	row := NoteRow{
		Path:     path,
		Title:    res.Title,
		Checksum: checksum.Sum(data),
		Tags:     tags,
	}
	return db.UpsertNote(row, Referenceables(path, res))
}

// Referenceables flattens a parse result into the nodes a link can target.
// The file itself comes first, followed by in-file anchors.
func Referenceables(path string, res *parser.Result) []models.Referenceable {
	out := make([]models.Referenceable, 0, 1+len(res.Headings)+len(res.Blocks)+len(res.Tags)+len(res.Footnotes))
	out = append(out, models.Referenceable{Path: path, Kind: models.KindFile, Line: -1})
	for _, h := range res.Headings {
		out = append(out, models.Referenceable{Path: path, Kind: models.KindHeading, Text: h.Text, Line: h.Line})
	}
	for _, b := range res.Blocks {
		out = append(out, models.Referenceable{Path: path, Kind: models.KindIndexedBlock, Text: b.Index, Line: b.Line})
	}
	for _, f := range res.Footnotes {
		out = append(out, models.Referenceable{Path: path, Kind: models.KindFootnote, Text: f.Label, Line: f.Line})
	}
	for _, t := range res.Tags {
		out = append(out, models.Referenceable{Path: path, Kind: models.KindTag, Text: t, Line: -1})
	}
	return out
}
