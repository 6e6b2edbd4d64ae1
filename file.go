package tap

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LiveUpdateOpt restricts the L parameter of FileValue.
// EnableLiveUpdate and DisableLiveUpdate are the two implementations.
// This interface SHOULD NOT be implemented by users.
type LiveUpdateOpt interface {
	isWatched() bool
}

// EnableLiveUpdate implements LiveUpdateOpt
type EnableLiveUpdate struct{}

func (EnableLiveUpdate) isWatched() bool { return true }

// DisableLiveUpdate implements LiveUpdateOpt
type DisableLiveUpdate struct{}

func (DisableLiveUpdate) isWatched() bool { return false }

var (
	_ Parse = &FileValue[any, EnableLiveUpdate]{}
	_ Parse = &FileValue[any, DisableLiveUpdate]{}
)

// FileValue decodes T from a configuration file named on the command
// line. It implements Parse, so it binds like any other value:
//
//	var cfg tap.FileValue[Config, tap.DisableLiveUpdate]
//	arg := tap.NewVarArg("configuration file", &cfg, "c", "config")
//
// The file is decoded as JSON, YAML or TOML depending on its
// extension; an unknown extension tries all three in order. With
// EnableLiveUpdate the file is watched and the value republished on
// change. The published value is replaced wholesale, never mutated in
// place, so a *T obtained from Get stays internally consistent while
// newer loads happen.
type FileValue[T any, L LiveUpdateOpt] struct {
	parsed atomic.Bool
	val    atomic.Pointer[T]

	liveUpdate L
	events     chan fsnotify.Event
}

// unmarshalFn is the signature shared by json, yaml and toml.
type unmarshalFn func(data []byte, v any) error

// FromString loads and decodes the file. The parse engine calls it
// with the command line token; calling it a second time is programmer
// misuse.
func (f *FileValue[T, L]) FromString(source string) error {
	if !f.parsed.CompareAndSwap(false, true) {
		panic(panicDoubleRegister)
	}
	if err := f.load(source); err != nil {
		return err
	}
	if f.liveUpdate.isWatched() {
		f.events = make(chan fsnotify.Event, 2)
		return f.watchChange(source)
	}
	return nil
}

// Example returns the sample input shown in usage text.
func (f *FileValue[T, L]) Example() string {
	return "config-file"
}

// Get returns the currently published value.
func (f *FileValue[T, L]) Get() *T {
	return f.val.Load()
}

// UpdateEvents returns a channel receiving one event per applied
// reload, nil unless live update is enabled. A channel instead of a
// callback keeps reload handling on the consumer's goroutine.
func (f *FileValue[T, L]) UpdateEvents() <-chan fsnotify.Event {
	return f.events
}

func (f *FileValue[T, L]) load(source string) error {
	content, err := os.ReadFile(source)
	if err != nil {
		return errors.Wrap(err, "read config file")
	}

	value := new(T)
	var decodeErrs []string
	for _, unmarshal := range decodeOrder(source) {
		if err := unmarshal(content, value); err == nil {
			f.val.Store(value)
			return nil
		} else {
			decodeErrs = append(decodeErrs, err.Error())
		}
	}
	return errors.Errorf(
		"decode config file %s: [%s]",
		source, strings.Join(decodeErrs, "] ["),
	)
}

func decodeOrder(source string) []unmarshalFn {
	switch {
	case strings.HasSuffix(source, ".json"):
		return []unmarshalFn{json.Unmarshal}
	case strings.HasSuffix(source, ".yaml"), strings.HasSuffix(source, ".yml"):
		return []unmarshalFn{yaml.Unmarshal}
	case strings.HasSuffix(source, ".toml"):
		return []unmarshalFn{toml.Unmarshal}
	default:
		return []unmarshalFn{json.Unmarshal, yaml.Unmarshal, toml.Unmarshal}
	}
}

// watchChange watches the containing directory, not the file itself,
// so renames and atomic saves are still observed.
func (f *FileValue[T, L]) watchChange(filename string) error {
	configFile := filepath.Clean(filename)
	configDir, _ := filepath.Split(configFile)
	realConfigFile, _ := filepath.EvalSymlinks(filename)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return errors.Wrap(err, "watch config dir")
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				currentConfigFile, _ := filepath.EvalSymlinks(filename)
				// reload when the file was written or created, or when
				// the resolved path changed underneath us (symlinked
				// config replaced)
				written := filepath.Clean(event.Name) == configFile &&
					(event.Has(fsnotify.Write) || event.Has(fsnotify.Create))
				relinked := currentConfigFile != "" && currentConfigFile != realConfigFile
				if written || relinked {
					realConfigFile = currentConfigFile
					if err := f.load(filename); err != nil {
						log.Printf("reload config file: %v", err)
						continue
					}
					select {
					case f.events <- event:
					default:
						// slow consumer, drop the event
					}
				} else if filepath.Clean(event.Name) == configFile && event.Has(fsnotify.Remove) {
					return
				}
			case err, ok := <-watcher.Errors:
				if ok {
					log.Printf("watcher error: %v", err)
				}
				return
			}
		}
	}()
	return nil
}
