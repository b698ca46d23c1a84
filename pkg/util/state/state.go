package state

import (
	"github.com/spf13/viper"
)

// Keys under which parsed configuration is stored back into viper.
const (
	ProjectKey     = "parsed::project"
	ImagesKey      = "parsed::images"
	ChartConfigKey = "parsed::helm"
	ServersKey     = "parsed::servers"
	PolicyKey      = "parsed::interpolation"
	ExportKey      = "parsed::export"
)

// GetValue returns the value stored at key, or the zero value of T when the key is unset or
// holds another type.
func GetValue[T any](v *viper.Viper, key string) T {
	val, _ := LookupValue[T](v, key)
	return val
}

// LookupValue is GetValue reporting whether a value of type T was found.
func LookupValue[T any](v *viper.Viper, key string) (T, bool) {
	val, ok := v.Get(key).(T)
	return val, ok
}

func SetValue[T any](v *viper.Viper, key string, value T) {
	v.Set(key, value)
}
