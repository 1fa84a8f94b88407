package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/justapithecus/lode/lode"

	"github.com/pithecene-io/ezcrash/iox"
	"github.com/pithecene-io/ezcrash/report"
	"github.com/pithecene-io/ezcrash/sink"
)

// ErrUnrecognized is returned for files that are neither a crash report
// nor a crash record.
var ErrUnrecognized = errors.New("not a crash report or crash record")

// Load reads a crash file from disk.
func Load(path string) (*report.Record, Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("crash file not found: %s", path)
		}
		return nil, "", fmt.Errorf("cannot read crash file %q: %w", path, err)
	}
	rec, format, err := Decode(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return rec, format, nil
}

// Decode detects the format of data and parses it.
// Text reports are recognized by their header line.
func Decode(data []byte) (*report.Record, Format, error) {
	if bytes.HasPrefix(data, []byte(report.Header)) {
		rec, err := report.ParseText(string(data))
		if err != nil {
			return nil, "", err
		}
		return rec, FormatText, nil
	}

	rec, err := report.DecodeRecord(data)
	if err != nil {
		if errors.Is(err, report.ErrUnsupportedVersion) {
			return nil, "", err
		}
		return nil, "", errors.Join(ErrUnrecognized, err)
	}
	return rec, FormatRecord, nil
}

// InspectCrash loads a crash file and summarizes it.
func InspectCrash(path string) (*InspectCrashResponse, error) {
	rec, format, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Summarize(rec, path, format), nil
}

// Summarize builds the inspect response for a parsed record.
func Summarize(rec *report.Record, source string, format Format) *InspectCrashResponse {
	resp := &InspectCrashResponse{
		Source:     source,
		Format:     format,
		IncidentID: rec.IncidentID,
		Timestamp:  rec.Timestamp,
		PID:        rec.PID,
		Kind:       rec.Kind,
		Code:       fmt.Sprintf("0x%08X", rec.Fault.Code),
		Address:    fmt.Sprintf("0x%016X", rec.Fault.Address),
		Registers:  rec.Registers != nil,
		Frames:     len(rec.Frames),
		Record:     rec,
	}
	if rec.Access != nil {
		resp.Access = fmt.Sprintf("%s 0x%016X", rec.Access.Type, rec.Access.Address)
	}
	return resp
}

// ListArchive lists the records stored under an archive directory,
// newest first.
func ListArchive(ctx context.Context, root string) ([]ArchiveEntry, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("archive not found: %s", root)
	}
	store, err := lode.NewFSFactory(root)()
	if err != nil {
		return nil, fmt.Errorf("open archive %s: %w", root, err)
	}
	return listStore(ctx, store)
}

func listStore(ctx context.Context, store lode.Store) ([]ArchiveEntry, error) {
	paths, err := store.List(ctx, sink.ArchivePrefix+"/")
	if err != nil {
		return nil, fmt.Errorf("list archive: %w", err)
	}

	entries := make([]ArchiveEntry, 0, len(paths))
	for _, p := range paths {
		if !strings.HasSuffix(p, "/"+sink.ArchiveFile) {
			continue
		}
		rec, err := getRecord(ctx, store, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ArchiveEntry{
			Path:       p,
			IncidentID: rec.IncidentID,
			Timestamp:  rec.Timestamp,
			Kind:       rec.Kind,
			Address:    fmt.Sprintf("0x%016X", rec.Fault.Address),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	return entries, nil
}

func getRecord(ctx context.Context, store lode.Store, path string) (*report.Record, error) {
	rc, err := store.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer iox.DiscardClose(rc)

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	rec, err := report.DecodeRecord(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}
