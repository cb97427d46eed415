// Package profile records runtime profiles of a playback run.
//
// The CPU profile and execution trace cover the whole run; they show where
// loading time goes and how closely frame pacing tracks the target rate. The
// heap and block profiles are snapshots written when profiling stops.
//
//	cfg := profile.NewConfig()
//	cfg.RegisterFlags(rootCmd.PersistentFlags())
//
//	p := cfg.NewProfiler()
//	if err := p.Start(); err != nil {
//	    return err
//	}
//	defer p.Stop()
//
// Users then enable profiling with flags like --cpu-profile=cpu.prof or
// --trace=run.trace.
package profile
