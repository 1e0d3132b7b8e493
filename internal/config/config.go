// Package config loads game definitions written in CUE.
//
// A games directory holds one or more .cue files of the same package, each
// declaring entries under the top-level game field:
//
//	package games
//
//	game: example: {
//		seed:   "389125467"
//		rounds: 100
//	}
//
//	game: million: {
//		seed:    "389125467"
//		size:    1000000
//		rounds:  10000000
//		readout: "pair"
//	}
//
// Definitions are unified with an embedded schema (schema.cue) that closes
// the field set, constrains the seed to digits, and supplies defaults for
// size, readout and sentinel. Games are returned in declaration order.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/cupgame/internal/game"
)

//go:embed schema.cue
var schemaSrc string

// Error code constants, shared with the CLI's JSON error output.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed

	ErrCodeInvalidGame = "E101" // Game violates the schema
	ErrCodeNoGames     = "E102" // No game entries declared
)

// LoadError represents an error that occurred while loading games.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the LoadError code carried by err, or ErrCodeGeneric.
func ErrorCode(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ErrCodeGeneric
}

// LoadResult contains the games found in a directory or file.
type LoadResult struct {
	Games     []game.Spec
	FileCount int
}

// Load loads games from path, which may be a directory of .cue files or a
// single .cue file.
func Load(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("games path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing games path: %v", err)}
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadFile(path)
}

// LoadDir loads every .cue file in dir as one CUE instance.
func LoadDir(dir string) (*LoadResult, error) {
	files, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(files) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, buildError(err)
	}

	games, err := decodeGames(ctx, value)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Games: games, FileCount: len(files)}, nil
}

// LoadFile loads games from a single .cue file.
func LoadFile(path string) (*LoadResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading games file: %v", err)}
	}
	games, err := compile(string(src), path)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Games: games, FileCount: 1}, nil
}

// LoadString loads games from CUE source held in memory.
func LoadString(src string) ([]game.Spec, error) {
	return compile(src, "games.cue")
}

func compile(src, filename string) ([]game.Spec, error) {
	ctx := cuecontext.New()
	value := ctx.CompileString(src, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, buildError(err)
	}
	return decodeGames(ctx, value)
}

// decodeGames unifies value with the schema and extracts each game entry.
func decodeGames(ctx *cue.Context, value cue.Value) ([]game.Spec, error) {
	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("compiling schema: %v", err)}
	}

	unified := schema.Unify(value)
	if err := unified.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidGame, Message: err.Error(), Pos: firstPos(err)}
	}

	gamesVal := unified.LookupPath(cue.ParsePath("game"))
	if !gamesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoGames, Message: "no game entries declared"}
	}

	iter, err := gamesVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating games: %v", err)}
	}

	var games []game.Spec
	for iter.Next() {
		spec, err := decodeGame(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		games = append(games, spec)
	}
	if len(games) == 0 {
		return nil, &LoadError{Code: ErrCodeNoGames, Message: "no game entries declared"}
	}
	return games, nil
}

func decodeGame(name string, v cue.Value) (game.Spec, error) {
	spec := game.Spec{Name: name}

	fieldErr := func(field string, err error) error {
		return &LoadError{
			Code:    ErrCodeInvalidGame,
			Message: fmt.Sprintf("game.%s.%s: %v", name, field, err),
			Pos:     v.Pos(),
		}
	}

	var err error
	if spec.Seed, err = lookup(v, "seed").String(); err != nil {
		return spec, fieldErr("seed", err)
	}
	size, err := lookup(v, "size").Int64()
	if err != nil {
		return spec, fieldErr("size", err)
	}
	spec.Size = int(size)
	if spec.Rounds, err = lookup(v, "rounds").Uint64(); err != nil {
		return spec, fieldErr("rounds", err)
	}
	readout, err := lookup(v, "readout").String()
	if err != nil {
		return spec, fieldErr("readout", err)
	}
	if spec.Readout, err = game.ParseReadout(readout); err != nil {
		return spec, fieldErr("readout", err)
	}
	sentinel, err := lookup(v, "sentinel").Int64()
	if err != nil {
		return spec, fieldErr("sentinel", err)
	}
	spec.Sentinel = int(sentinel)

	return spec, nil
}

// lookup returns the named field, resolved to its default when it has one.
func lookup(v cue.Value, field string) cue.Value {
	f := v.LookupPath(cue.ParsePath(field))
	if d, ok := f.Default(); ok {
		return d
	}
	return f
}

func buildError(err error) *LoadError {
	return &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err), Pos: firstPos(err)}
}

func firstPos(err error) token.Pos {
	if positions := cueerrors.Positions(err); len(positions) > 0 {
		return positions[0]
	}
	return token.NoPos
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
