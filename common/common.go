package common

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// registry maps names to a zero value of the registered type so that
// components such as loss functions can be chosen by name from flags or
// configuration files, and so that interface-typed fields can be encoded
// with InterfaceMarshaler.
var registry = struct {
	sync.RWMutex
	m     map[string]interface{}
	names map[reflect.Type]string
}{
	m:     make(map[string]interface{}),
	names: make(map[reflect.Type]string),
}

// Register records the underlying type of i under name. Usually, types
// will be registered in an init() function of a package. This follows
// in spirit with encoding/gob: Register panics if the name or the type
// is already taken. A type and a pointer to it are different types.
func Register(name string, i interface{}) {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.m[name]; ok {
		panic("common/Register: name " + name + " already registered")
	}
	typ := reflect.TypeOf(i)
	if other, ok := registry.names[typ]; ok {
		panic("common/Register: type " + typ.String() + " already registered as " + other)
	}
	registry.m[name] = i
	registry.names[typ] = name
}

// NotRegistered is retured if no type has been registered under a name
type NotRegistered struct {
	Name string
}

func (n *NotRegistered) Error() string {
	return fmt.Sprintf("common: %s not registered", n.Name)
}

// Lookup returns a new zero value of the type registered under name. If the
// type was registered as a pointer, a pointer to a new value is returned.
func Lookup(name string) (interface{}, error) {
	registry.RLock()
	val, ok := registry.m[name]
	registry.RUnlock()
	if !ok {
		return nil, &NotRegistered{Name: name}
	}
	typ := reflect.TypeOf(val)
	if typ.Kind() == reflect.Ptr {
		return reflect.New(typ.Elem()).Interface(), nil
	}
	return reflect.New(typ).Elem().Interface(), nil
}

// NameOf returns the name the dynamic type of i was registered under.
func NameOf(i interface{}) (string, error) {
	typ := reflect.TypeOf(i)
	if typ == nil {
		return "", &NotRegistered{Name: "<nil>"}
	}
	registry.RLock()
	name, ok := registry.names[typ]
	registry.RUnlock()
	if !ok {
		return "", &NotRegistered{Name: typ.String()}
	}
	return name, nil
}

// Registered returns the sorted list of registered names.
func Registered() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.m))
	for name := range registry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InterfaceMarshaler is a type to help the marshaling and unmarshaling
// of interface values. The dynamic type of I must first be registered
// using Register. It is encoded as {"type": name, "value": I}.
type InterfaceMarshaler struct {
	I interface{}
}

type typeMarshaler struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

func (l InterfaceMarshaler) MarshalJSON() ([]byte, error) {
	name, err := NameOf(l.I)
	if err != nil {
		return nil, err
	}
	value, err := json.Marshal(l.I)
	if err != nil {
		return nil, err
	}
	return json.Marshal(typeMarshaler{Type: name, Value: value})
}

func (l *InterfaceMarshaler) UnmarshalJSON(data []byte) error {
	var t typeMarshaler
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	val, err := Lookup(t.Type)
	if err != nil {
		return fmt.Errorf("common: unmarshaling interface: %w", err)
	}
	if len(t.Value) == 0 {
		l.I = val
		return nil
	}
	if reflect.TypeOf(val).Kind() == reflect.Ptr {
		if err := json.Unmarshal(t.Value, val); err != nil {
			return err
		}
		l.I = val
		return nil
	}
	ptr := reflect.New(reflect.TypeOf(val))
	if err := json.Unmarshal(t.Value, ptr.Interface()); err != nil {
		return err
	}
	l.I = ptr.Elem().Interface()
	return nil
}
