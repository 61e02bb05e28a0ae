package generate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tailgen/css"
	"tailgen/theme"
)

// ErrUnknownPlugin is returned when style configuration references plugin
// which is not registered.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Plugin extends generator with additional base rules and components.
type Plugin interface {
	Name() string
	Register(api *API)
}

// ComponentFunc builds component rules for the given (already escaped and
// variant adjusted) class selector.
type ComponentFunc func(selector string) []css.Rule

type component struct {
	owner string
	build ComponentFunc
}

// API is handed to plugins during registration.
type API struct {
	theme      theme.Theme
	current    string
	base       []css.Rule
	components map[string]component
	log        *zap.Logger
}

func newAPI(t theme.Theme, log *zap.Logger) *API {
	return &API{theme: t, components: make(map[string]component), log: log}
}

// Theme returns resolved token set.
func (a *API) Theme() theme.Theme {
	return a.theme
}

// Token returns first value of token or fallback when theme does not have it.
func (a *API) Token(category, name, fallback string) string {
	if v, ok := a.theme.Lookup(category, name); ok {
		return v.String()
	}
	return fallback
}

// AddBase adds rules to the base layer. Base rules are emitted regardless of
// content.
func (a *API) AddBase(rules ...css.Rule) {
	a.base = append(a.base, rules...)
}

// AddComponent registers class for components layer. Component is emitted
// only when class is used in content. Later registration wins.
func (a *API) AddComponent(class string, build ComponentFunc) {
	if prev, ok := a.components[class]; ok && prev.owner != a.current {
		a.log.Warn("Plugin overrides component",
			zap.String("class", class),
			zap.String("plugin", a.current),
			zap.String("previous", prev.owner))
	}
	a.components[class] = component{owner: a.current, build: build}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Plugin{
		formsName:      func() Plugin { return &forms{} },
		typographyName: func() Plugin { return &typography{} },
	}
)

// RegisterPlugin makes plugin available by name. It panics if name is
// already taken.
func RegisterPlugin(name string, factory func() Plugin) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[name]; ok {
		panic(fmt.Sprintf("plugin %q registered twice", name))
	}
	registry[name] = factory
}

// LookupPlugin returns new instance of named plugin.
func LookupPlugin(name string) (Plugin, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownPlugin, name, strings.Join(PluginNames(), ", "))
	}
	return factory(), nil
}

// PluginNames returns names of all registered plugins, sorted.
func PluginNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return slices.Sorted(maps.Keys(registry))
}
