// Package discovery registers services with a Consul agent.
package discovery

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/consul/api"
)

// Agent is the part of the Consul agent API used for registration.
type Agent interface {
	ServiceRegister(service *api.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// Service describes one instance to register.
type Service struct {
	Name       string
	Host       string
	Port       int
	HealthPath string
	Tags       []string
}

// ConsulRegistry registers a single service instance and removes it again on shutdown.
type ConsulRegistry struct {
	agent Agent
	id    string
}

// NewConsulRegistry connects to the Consul agent at addr.
func NewConsulRegistry(addr string) (*ConsulRegistry, error) {
	cfg := api.DefaultConfig()
	cfg.Address = addr

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	return NewConsulRegistryWithAgent(client.Agent()), nil
}

func NewConsulRegistryWithAgent(agent Agent) *ConsulRegistry {
	return &ConsulRegistry{agent: agent}
}

// Register registers svc with an HTTP health check against its health path and returns
// the generated instance id.
func (r *ConsulRegistry) Register(svc Service) (string, error) {
	id := fmt.Sprintf("%s-%s", svc.Name, uuid.NewString())

	if err := r.agent.ServiceRegister(newRegistration(id, svc)); err != nil {
		return "", fmt.Errorf("failed to register service %s: %w", svc.Name, err)
	}

	r.id = id
	return id, nil
}

// Deregister removes the registered instance. It is a no-op if Register never succeeded.
func (r *ConsulRegistry) Deregister() error {
	if r.id == "" {
		return nil
	}

	if err := r.agent.ServiceDeregister(r.id); err != nil {
		return fmt.Errorf("failed to deregister service %s: %w", r.id, err)
	}

	r.id = ""
	return nil
}

func newRegistration(id string, svc Service) *api.AgentServiceRegistration {
	return &api.AgentServiceRegistration{
		ID:      id,
		Name:    svc.Name,
		Address: svc.Host,
		Port:    svc.Port,
		Tags:    svc.Tags,
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", svc.Host, svc.Port, svc.HealthPath),
			Interval:                       (10 * time.Second).String(),
			Timeout:                        (2 * time.Second).String(),
			DeregisterCriticalServiceAfter: time.Minute.String(),
		},
	}
}
