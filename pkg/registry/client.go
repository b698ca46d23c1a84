package registry

import (
	"go.uber.org/fx"
	helm_registry "helm.sh/helm/v3/pkg/registry"
)

// Default registry client provider
func NewDefaultRegistryClient() (ChartPusher, error) {
	plainHTTP := false
	debug := false

	return NewRegistryClient(plainHTTP, debug)
}

func NewRegistryClient(plainHTTP, debug bool) (ChartPusher, error) {
	opts := []helm_registry.ClientOption{}
	if plainHTTP {
		opts = append(opts, helm_registry.ClientOptPlainHTTP())
	}
	if debug {
		opts = append(opts, helm_registry.ClientOptDebug(true))
	}
	return helm_registry.NewClient(opts...)
}

var RegistryModule = fx.Provide(NewDefaultRegistryClient)
