package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// AdapterInfo describes a GPU adapter.
type AdapterInfo struct {
	// Name is the GPU name (e.g., "NVIDIA GeForce RTX 3080").
	Name string
	// Vendor is the GPU vendor.
	Vendor string
	// Driver is the driver version string.
	Driver string
	// DeviceType is the type of GPU (discrete, integrated, etc.).
	DeviceType gputypes.DeviceType
	// Backend is the graphics API in use (Vulkan, Metal, DX12).
	Backend gputypes.Backend

	MaxTextureDimension2D uint32
	MaxBufferSize         uint64
}

// String returns a human-readable description of the GPU.
func (a AdapterInfo) String() string {
	return fmt.Sprintf("%s (%v, %v)", a.Name, a.DeviceType, a.Backend)
}

func adapterInfo(exposed *hal.ExposedAdapter) AdapterInfo {
	limits := exposed.Capabilities.Limits
	return AdapterInfo{
		Name:                  exposed.Info.Name,
		Vendor:                exposed.Info.Vendor,
		Driver:                exposed.Info.Driver,
		DeviceType:            exposed.Info.DeviceType,
		Backend:               exposed.Info.Backend,
		MaxTextureDimension2D: limits.MaxTextureDimension2D,
		MaxBufferSize:         limits.MaxBufferSize,
	}
}

// selectAdapter prefers a discrete GPU, then an integrated one, then
// whatever comes first. It returns nil for an empty list.
func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for _, want := range []gputypes.DeviceType{gputypes.DeviceTypeDiscreteGPU, gputypes.DeviceTypeIntegratedGPU} {
		for i := range adapters {
			if adapters[i].Info.DeviceType == want {
				return &adapters[i]
			}
		}
	}
	return &adapters[0]
}

// backendPreference is the order registered backends are tried in.
var backendPreference = []gputypes.Backend{
	gputypes.BackendVulkan,
	gputypes.BackendMetal,
	gputypes.BackendDX12,
	gputypes.BackendGL,
}

// resolveBackend returns b, or the first registered backend in
// backendPreference when b is nil.
func resolveBackend(b InstanceFactory) (InstanceFactory, error) {
	if b != nil {
		return b, nil
	}
	for _, variant := range backendPreference {
		if backend, ok := hal.GetBackend(variant); ok {
			return backend, nil
		}
	}
	return nil, fmt.Errorf("%w (registered: %v)", ErrNoBackend, hal.AvailableBackends())
}

// ListAdapters enumerates the adapters of a backend without opening a
// device. A nil backend means the preferred registered backend.
func ListAdapters(backend InstanceFactory) ([]AdapterInfo, error) {
	factory, err := resolveBackend(backend)
	if err != nil {
		return nil, err
	}
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}
	defer instance.Destroy()

	adapters := instance.EnumerateAdapters(nil)
	infos := make([]AdapterInfo, 0, len(adapters))
	for i := range adapters {
		infos = append(infos, adapterInfo(&adapters[i]))
	}
	return infos, nil
}
