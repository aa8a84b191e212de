// Package attractor builds tube geometry around attractor trajectories.
//
// A trajectory is a polyline of 3D points loaded from plain numeric text
// files. A section is a closed 2D polygon that is swept along the trajectory.
// Tube turns the pair into triangle-strip segments on demand and caches each
// segment the first time it is drawn.
package attractor

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/attractor-viewer/internal/logger"
)

var (
	// ErrDataFile is returned when a required data file cannot be opened.
	ErrDataFile = errors.New("data file unavailable")
	// ErrLengthMismatch is returned when parallel coordinate lists differ in length.
	ErrLengthMismatch = errors.New("coordinate lists differ in length")
	// ErrTrajectoryTooShort is returned for trajectories with fewer than two points.
	ErrTrajectoryTooShort = errors.New("trajectory needs at least 2 points")
	// ErrSectionTooSmall is returned for sections with fewer than three points.
	ErrSectionTooSmall = errors.New("section needs at least 3 points")
)

// Trajectory is an ordered polyline. Segment i joins point i and point i+1.
type Trajectory []mgl32.Vec3

// Segments returns the number of segments in the trajectory.
func (t Trajectory) Segments() int {
	if len(t) < 2 {
		return 0
	}
	return len(t) - 1
}

// Section is a closed cross-section polygon. The last point connects back to
// the first without an explicit duplicate.
type Section []mgl32.Vec2

// File names inside a dataset directory.
const (
	fileX = "x.txt"
	fileY = "y.txt"
	fileZ = "z.txt"
)

// errNotFinite rejects tokens that parse but cannot be coordinates.
var errNotFinite = errors.New("not a finite decimal number")

// parseValue parses one decimal number. NaN, infinities and hex floats end
// the data the same way any other non-number does.
func parseValue(tok string) (float64, error) {
	if strings.ContainsAny(tok, "xXpP") {
		return 0, errNotFinite
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// ReadPoints reads whitespace separated numbers from a text file.
// Reading stops at the first token that is not a number.
func ReadPoints(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataFile, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)

	var values []float64
	for sc.Scan() {
		v, err := parseValue(sc.Text())
		if err != nil {
			logger.Warn("non-numeric token ends data",
				zap.String("file", path),
				zap.Int("values", len(values)),
				zap.String("token", sc.Text()),
			)
			break
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrDataFile, path, err)
	}
	return values, nil
}

// Zip3 combines parallel coordinate lists into 3D points.
func Zip3(xs, ys, zs []float64) (Trajectory, error) {
	if len(xs) != len(ys) || len(xs) != len(zs) {
		return nil, fmt.Errorf("%w: x=%d y=%d z=%d", ErrLengthMismatch, len(xs), len(ys), len(zs))
	}
	out := make(Trajectory, len(xs))
	for i := range xs {
		out[i] = mgl32.Vec3{float32(xs[i]), float32(ys[i]), float32(zs[i])}
	}
	return out, nil
}

// Zip2 combines parallel coordinate lists into 2D points.
func Zip2(xs, ys []float64) (Section, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%w: x=%d y=%d", ErrLengthMismatch, len(xs), len(ys))
	}
	out := make(Section, len(xs))
	for i := range xs {
		out[i] = mgl32.Vec2{float32(xs[i]), float32(ys[i])}
	}
	return out, nil
}

// LoadTrajectory reads x.txt, y.txt and z.txt from dir.
func LoadTrajectory(dir string) (Trajectory, error) {
	cols, err := readColumns(dir, fileX, fileY, fileZ)
	if err != nil {
		return nil, err
	}
	t, err := Zip3(cols[0], cols[1], cols[2])
	if err != nil {
		return nil, fmt.Errorf("trajectory %s: %w", dir, err)
	}
	if len(t) < 2 {
		return nil, fmt.Errorf("trajectory %s: %w", dir, ErrTrajectoryTooShort)
	}
	return t, nil
}

// LoadSection reads x.txt and y.txt from dir.
func LoadSection(dir string) (Section, error) {
	cols, err := readColumns(dir, fileX, fileY)
	if err != nil {
		return nil, err
	}
	s, err := Zip2(cols[0], cols[1])
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", dir, err)
	}
	if len(s) < 3 {
		return nil, fmt.Errorf("section %s: %w", dir, ErrSectionTooSmall)
	}
	return s, nil
}

func readColumns(dir string, names ...string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for i, name := range names {
		values, err := ReadPoints(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		cols[i] = values
	}
	return cols, nil
}
