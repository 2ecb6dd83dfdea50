package analysis

// Config selects the optional passes of a run.
type Config struct {
	// ComputeBetweenness enables betweenness and stress centrality in the
	// shortest path sweep.
	ComputeBetweenness bool `json:"compute_betweenness" yaml:"compute_betweenness" mapstructure:"compute_betweenness"`
	// ComputeStrongComponents enables Tarjan's pass on directed graphs.
	ComputeStrongComponents bool `json:"compute_strong_components" yaml:"compute_strong_components" mapstructure:"compute_strong_components"`
	// Workers is the number of sweep goroutines; values below 1 mean 1.
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers" validate:"gte=0,lte=1024"`
	// Subset restricts the reported per-node statistics to these node
	// indices, in this order. Nil reports every node.
	Subset []int `json:"subset,omitempty" yaml:"subset,omitempty" mapstructure:"subset"`
}

// DefaultConfig runs every pass on a single worker.
func DefaultConfig() Config {
	return Config{
		ComputeBetweenness:      true,
		ComputeStrongComponents: true,
		Workers:                 1,
	}
}

func (c Config) workers() int {
	if c.Workers < 1 {
		return 1
	}
	return c.Workers
}

// validate checks the config against a graph of n nodes.
func (c Config) validate(n int) error {
	if n == 0 {
		return invalidInput(-1, "network has no nodes")
	}
	if c.Subset == nil {
		return nil
	}
	if len(c.Subset) == 0 {
		return invalidInput(-1, "node subset is empty")
	}
	seen := make(map[int]struct{}, len(c.Subset))
	for _, v := range c.Subset {
		if v < 0 || v >= n {
			return invalidInput(v, "subset node outside 0..%d", n-1)
		}
		if _, dup := seen[v]; dup {
			return invalidInput(v, "subset node listed twice")
		}
		seen[v] = struct{}{}
	}
	return nil
}
