package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/zap"
)

// ScriptCurve is a spawn curve computed by a tengo script. The script sees
// t (elapsed seconds), base and rate, and assigns the chance to p.
type ScriptCurve struct {
	name     string
	compiled *tengo.Compiled
	base     float64
	rate     float64
	log      *zap.Logger
	lastErr  string
}

// LoadScriptCurve compiles the named script. base and rate are the linear
// constants handed to the script and used as a fallback when it fails.
func LoadScriptCurve(l Loader, name string, base, rate float64, log *zap.Logger) (*ScriptCurve, error) {
	src, err := l.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load script %s: %w", name, err)
	}
	return NewScriptCurve(name, src, base, rate, log)
}

func NewScriptCurve(name string, src []byte, base, rate float64, log *zap.Logger) (*ScriptCurve, error) {
	if log == nil {
		log = zap.NewNop()
	}
	script := tengo.NewScript(src)
	_ = script.Add("t", 0.0)
	_ = script.Add("base", base)
	_ = script.Add("rate", rate)
	_ = script.Add("p", 0.0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("prefabs: compile script %s: %w", name, err)
	}
	return &ScriptCurve{
		name:     name,
		compiled: compiled,
		base:     base,
		rate:     rate,
		log:      log,
	}, nil
}

// Probability runs the script for t. A failing script falls back to the
// linear curve for that call.
func (c *ScriptCurve) Probability(t float64) float64 {
	p, err := c.eval(t)
	if err != nil {
		if msg := err.Error(); msg != c.lastErr {
			c.lastErr = msg
			c.log.Warn("spawn curve script failed", zap.String("script", c.name), zap.Error(err))
		}
		return c.base + c.rate*t
	}
	return p
}

func (c *ScriptCurve) eval(t float64) (float64, error) {
	if err := c.compiled.Set("t", t); err != nil {
		return 0, err
	}
	if err := c.compiled.Run(); err != nil {
		return 0, err
	}
	p, ok := tengo.ToFloat64(c.compiled.Get("p").Object())
	if !ok {
		return 0, fmt.Errorf("p is %s, not a number", c.compiled.Get("p").ValueType())
	}
	return p, nil
}
