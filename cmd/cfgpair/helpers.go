package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/raphi011/cfgpair/internal/config"
	"github.com/raphi011/cfgpair/internal/log"
)

type settingsKey struct{}

func withSettings(ctx context.Context, v *viper.Viper) context.Context {
	return context.WithValue(ctx, settingsKey{}, v)
}

func settingsFromContext(ctx context.Context) *viper.Viper {
	if v, ok := ctx.Value(settingsKey{}).(*viper.Viper); ok {
		return v
	}
	return settings
}

// configPaths returns the tracked config path and the explicit local path
// (empty when the sibling should be derived).
func configPaths(ctx context.Context) (primary, local string) {
	v := settingsFromContext(ctx)
	primary = v.GetString("config")
	if primary == "" {
		primary = config.DefaultConfigFile
	}
	return primary, v.GetString("local")
}

// localPath returns the local override path in effect: the explicit one or
// the derived sibling.
func localPath(ctx context.Context) string {
	primary, local := configPaths(ctx)
	if local != "" {
		return local
	}
	return config.LocalPathFor(primary)
}

// loadPair builds the config pair for the current invocation.
func loadPair(ctx context.Context) (*config.Pair, error) {
	primary, local := configPaths(ctx)

	opts := []config.PairOption{config.WithLogger(log.FromContext(ctx))}
	if local != "" {
		opts = append(opts, config.WithLocalPath(local))
	}

	pair, err := config.BuildPair(primary, opts...)
	if err != nil {
		return nil, fmt.Errorf("cfgpair: %w", err)
	}
	return pair, nil
}

// loadResolver builds a Resolver over the current config pair.
func loadResolver(ctx context.Context) (*config.Resolver, error) {
	if r := config.ResolverFromContext(ctx); r != nil {
		return r, nil
	}
	pair, err := loadPair(ctx)
	if err != nil {
		return nil, err
	}
	return config.NewResolver(pair), nil
}
