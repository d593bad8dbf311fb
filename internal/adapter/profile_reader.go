package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	m "github.com/NeatNerdPrime/undercover/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/cover"
)

// ProfileSet is the merged content of one or more Go coverage profiles.
type ProfileSet struct {
	Profiles []*cover.Profile
	// ModTime is the modification time of the newest profile read.
	ModTime time.Time
}

// ProfileReader loads `go test -coverprofile` output.
type ProfileReader interface {
	ReadProfiles(ctx context.Context, paths []m.Path) (ProfileSet, error)
}

// LocalProfileReader parses profiles from disk with golang.org/x/tools/cover.
type LocalProfileReader struct{}

// NewLocalProfileReader constructs a LocalProfileReader.
func NewLocalProfileReader() *LocalProfileReader {
	return &LocalProfileReader{}
}

type parsedProfile struct {
	profiles []*cover.Profile
	modTime  time.Time
}

// ReadProfiles parses every path concurrently and merges the results. Blocks
// at the same position are combined: counts are summed, or OR-ed in set mode.
func (r *LocalProfileReader) ReadProfiles(ctx context.Context, paths []m.Path) (ProfileSet, error) {
	if len(paths) == 0 {
		return ProfileSet{}, fmt.Errorf("no coverage profiles given")
	}

	parsed := make([]parsedProfile, len(paths))

	group, groupCtx := errgroup.WithContext(ctx)

	for i, path := range paths {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			info, err := os.Stat(string(path))
			if err != nil {
				return fmt.Errorf("stat profile %s: %w", path, err)
			}

			profiles, err := cover.ParseProfiles(string(path))
			if err != nil {
				return fmt.Errorf("parse profile %s: %w", path, err)
			}

			slog.Debug("parsed coverage profile", "path", path, "files", len(profiles))
			parsed[i] = parsedProfile{profiles: profiles, modTime: info.ModTime()}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return ProfileSet{}, err
	}

	set := ProfileSet{}
	all := make([][]*cover.Profile, 0, len(parsed))

	for _, p := range parsed {
		if p.modTime.After(set.ModTime) {
			set.ModTime = p.modTime
		}

		all = append(all, p.profiles)
	}

	set.Profiles = mergeProfiles(all...)

	return set, nil
}

type blockKey struct {
	startLine, startCol, endLine, endCol int
}

func mergeProfiles(sets ...[]*cover.Profile) []*cover.Profile {
	byFile := make(map[string]*cover.Profile)
	blocksByFile := make(map[string]map[blockKey]int)

	for _, profiles := range sets {
		for _, profile := range profiles {
			merged, ok := byFile[profile.FileName]
			if !ok {
				merged = &cover.Profile{FileName: profile.FileName, Mode: profile.Mode}
				byFile[profile.FileName] = merged
				blocksByFile[profile.FileName] = make(map[blockKey]int)
			}

			index := blocksByFile[profile.FileName]

			for _, block := range profile.Blocks {
				key := blockKey{block.StartLine, block.StartCol, block.EndLine, block.EndCol}

				pos, seen := index[key]
				if !seen {
					index[key] = len(merged.Blocks)
					merged.Blocks = append(merged.Blocks, block)

					continue
				}

				if merged.Mode == "set" {
					if block.Count > 0 {
						merged.Blocks[pos].Count = 1
					}

					continue
				}

				merged.Blocks[pos].Count += block.Count
			}
		}
	}

	result := make([]*cover.Profile, 0, len(byFile))
	for _, profile := range byFile {
		sort.Slice(profile.Blocks, func(i, j int) bool {
			bi, bj := profile.Blocks[i], profile.Blocks[j]
			if bi.StartLine != bj.StartLine {
				return bi.StartLine < bj.StartLine
			}

			return bi.StartCol < bj.StartCol
		})

		result = append(result, profile)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].FileName < result[j].FileName
	})

	return result
}
