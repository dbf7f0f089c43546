package texture

import (
	"fmt"
	"io"
	"reflect"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
)

// ViewProxy owns at most one texture view created on a device.
// CreateView may be called any number of times; each call replaces the
// current view.
//
// ViewProxy is not safe for concurrent use.
type ViewProxy struct {
	device     gpucore.Device
	label      string
	opts       []DecodeOption
	view       gpucore.TextureView
	generation uint64
}

// NewViewProxy creates an empty proxy bound to device.
func NewViewProxy(device gpucore.Device, label string, opts ...DecodeOption) *ViewProxy {
	return &ViewProxy{device: device, label: label, opts: opts}
}

// CreateView decodes stream and replaces the current view with a view of
// it. A nil stream clears the view and is not an error.
//
// Streams that implement io.Seeker are rewound first, so the same stream
// can be uploaded again after a detach and reattach. The stream is never
// closed.
//
// On error the previous view has already been released and the proxy is
// empty.
func (p *ViewProxy) CreateView(stream io.Reader) error {
	p.releaseView()
	p.generation++

	if stream == nil {
		return nil
	}
	if s, ok := stream.(io.Seeker); ok {
		if _, err := s.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("texture: rewind stream: %w", err)
		}
	}

	img, err := DecodeCube(stream, p.opts...)
	if err != nil {
		return err
	}
	view, err := p.device.CreateCubeTexture(p.label, img)
	if err != nil {
		return fmt.Errorf("texture: upload cube: %w", err)
	}
	p.view = view
	rendercore.Logger().Debug("texture: view created", "label", p.label, "face", img.Size, "generation", p.generation)
	return nil
}

// View returns the current view, or nil.
func (p *ViewProxy) View() gpucore.TextureView {
	if p == nil {
		return nil
	}
	return p.view
}

// Generation counts CreateView calls. It changes whenever the view might
// have.
func (p *ViewProxy) Generation() uint64 {
	return p.generation
}

// Release destroys the current view. The proxy stays usable.
func (p *ViewProxy) Release() {
	if p == nil {
		return
	}
	p.releaseView()
}

func (p *ViewProxy) releaseView() {
	if p.view != nil {
		p.view.Release()
		p.view = nil
	}
}

// SameStream reports whether a and b are the same stream. Comparable
// readers are compared by identity, so two pointers to equal readers are
// different streams. Readers of non-comparable value types are compared
// with reflect.DeepEqual. Comparing never panics.
func SameStream(a, b io.Reader) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if !ta.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	// Comparable struct types can still hold non-comparable interface values.
	defer func() {
		if recover() != nil {
			same = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}
