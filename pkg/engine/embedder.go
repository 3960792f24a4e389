package engine

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/mod/semver"

	stderrors "github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
)

// ProtocolVersion is the embedder interface version this core speaks.
const ProtocolVersion = "v1.4.0"

// MinEmbedderVersion is the oldest embedder protocol the core accepts.
const MinEmbedderVersion = "v1.2.0"

// SceneRenderer is the opaque backend capability: it receives the frame's
// finished scene and owns everything below it (rasterization, GPU command
// encoding, presentation).
type SceneRenderer interface {
	PresentScene(scene *graphics.Scene)
}

// EmbedderInfo describes the host driving this core: its name and the
// version of the embedder protocol it implements.
type EmbedderInfo struct {
	Name            string
	ProtocolVersion string
}

// ValidateEmbedder checks an embedder's reported protocol version against
// the supported range. An incompatible embedder yields an error (and a
// diagnostic record), never a panic: the host decides how to proceed.
func ValidateEmbedder(info EmbedderInfo) error {
	v := info.ProtocolVersion
	if !semver.IsValid(v) {
		err := fmt.Errorf("embedder %q reports malformed protocol version %q", info.Name, v)
		reportEmbedderIssue(err)
		return err
	}
	if semver.Compare(v, MinEmbedderVersion) < 0 {
		err := fmt.Errorf("embedder %q protocol %s is older than the supported minimum %s",
			info.Name, v, MinEmbedderVersion)
		reportEmbedderIssue(err)
		return err
	}
	if semver.Compare(semver.Major(v), semver.Major(ProtocolVersion)) > 0 {
		err := fmt.Errorf("embedder %q protocol %s is a newer major than the core's %s",
			info.Name, v, ProtocolVersion)
		reportEmbedderIssue(err)
		return err
	}
	return nil
}

func reportEmbedderIssue(err error) {
	stderrors.Report(&stderrors.FrameworkError{
		Op:        "engine.ValidateEmbedder",
		Kind:      stderrors.KindResource,
		Err:       err,
		Timestamp: time.Now(),
	})
}

// ErrNoRoot is returned by DrawFrame when no root view is attached.
var ErrNoRoot = errors.New("engine: no root attached")

// KeyPhase distinguishes key press and release.
type KeyPhase int

const (
	KeyDown KeyPhase = iota
	KeyUp
)

// KeyEvent is a raw keyboard event from the embedder.
type KeyEvent struct {
	Phase     KeyPhase
	Code      uint32
	Rune      rune
	Modifiers uint32
	Repeat    bool
}

// ScrollEvent is a raw scroll-wheel/trackpad event from the embedder.
type ScrollEvent struct {
	Position graphics.Offset
	Delta    graphics.Offset
	Device   int64
}
