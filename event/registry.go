package event

import (
	"reflect"
	"sync"
)

var (
	registryMu    sync.RWMutex
	nameToType    = make(map[string]EventType)
	typeToName    = make(map[EventType]string)
	typeToPayload = make(map[EventType]reflect.Type)
)

func init() {
	RegisterType(NameShuffleChange, EventShuffleChange, &ChangePayload{})
	RegisterType(NameShuffleComplete, EventShuffleComplete, nil)
}

// RegisterType maps a string name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil if the event has no payload
// Re-registering a type replaces its name and payload
func RegisterType(name string, et EventType, payloadInstance any) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if old, ok := typeToName[et]; ok {
		delete(nameToType, old)
	}
	nameToType[name] = et
	typeToName[et] = name

	delete(typeToPayload, et)
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := typeToName[et]
	return name, ok
}

// NewPayloadStruct returns a new pointer to a zero-value payload struct for the event type
// Returns nil if no payload is registered
func NewPayloadStruct(et EventType) any {
	registryMu.RLock()
	t, ok := typeToPayload[et]
	registryMu.RUnlock()
	if !ok {
		return nil
	}
	return reflect.New(t).Interface()
}
