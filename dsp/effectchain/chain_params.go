package effectchain

// Typed accessors for every parameter and stage. Setters clamp to [0, 1];
// getters return the stored value.

// SetDistortionDrive sets the distortion drive.
func (c *Chain) SetDistortionDrive(v float32) { c.SetParam(DistortionDrive, v) }

// DistortionDrive returns the distortion drive.
func (c *Chain) DistortionDrive() float32 { return c.Param(DistortionDrive) }

// SetDistortionMix sets the distortion dry/wet mix.
func (c *Chain) SetDistortionMix(v float32) { c.SetParam(DistortionMix, v) }

// DistortionMix returns the distortion dry/wet mix.
func (c *Chain) DistortionMix() float32 { return c.Param(DistortionMix) }

// SetFilterCutoff sets the resonant low-pass cutoff.
func (c *Chain) SetFilterCutoff(v float32) { c.SetParam(FilterCutoff, v) }

// FilterCutoff returns the resonant low-pass cutoff.
func (c *Chain) FilterCutoff() float32 { return c.Param(FilterCutoff) }

// SetFilterResonance sets the resonant low-pass resonance.
func (c *Chain) SetFilterResonance(v float32) { c.SetParam(FilterResonance, v) }

// FilterResonance returns the resonant low-pass resonance.
func (c *Chain) FilterResonance() float32 { return c.Param(FilterResonance) }

// SetEQLow sets the low shelf gain; 0.5 is flat.
func (c *Chain) SetEQLow(v float32) { c.SetParam(EQLow, v) }

// EQLow returns the low shelf gain.
func (c *Chain) EQLow() float32 { return c.Param(EQLow) }

// SetEQMid sets the mid peak gain; 0.5 is flat.
func (c *Chain) SetEQMid(v float32) { c.SetParam(EQMid, v) }

// EQMid returns the mid peak gain.
func (c *Chain) EQMid() float32 { return c.Param(EQMid) }

// SetEQHigh sets the high shelf gain; 0.5 is flat.
func (c *Chain) SetEQHigh(v float32) { c.SetParam(EQHigh, v) }

// EQHigh returns the high shelf gain.
func (c *Chain) EQHigh() float32 { return c.Param(EQHigh) }

// SetCompressorThreshold sets the compressor threshold.
func (c *Chain) SetCompressorThreshold(v float32) { c.SetParam(CompressorThreshold, v) }

// CompressorThreshold returns the compressor threshold.
func (c *Chain) CompressorThreshold() float32 { return c.Param(CompressorThreshold) }

// SetCompressorRatio sets the compressor ratio.
func (c *Chain) SetCompressorRatio(v float32) { c.SetParam(CompressorRatio, v) }

// CompressorRatio returns the compressor ratio.
func (c *Chain) CompressorRatio() float32 { return c.Param(CompressorRatio) }

// SetCompressorAttack sets the compressor attack time.
func (c *Chain) SetCompressorAttack(v float32) { c.SetParam(CompressorAttack, v) }

// CompressorAttack returns the compressor attack time.
func (c *Chain) CompressorAttack() float32 { return c.Param(CompressorAttack) }

// SetCompressorRelease sets the compressor release time.
func (c *Chain) SetCompressorRelease(v float32) { c.SetParam(CompressorRelease, v) }

// CompressorRelease returns the compressor release time.
func (c *Chain) CompressorRelease() float32 { return c.Param(CompressorRelease) }

// SetCompressorMakeup sets the compressor makeup gain.
func (c *Chain) SetCompressorMakeup(v float32) { c.SetParam(CompressorMakeup, v) }

// CompressorMakeup returns the compressor makeup gain.
func (c *Chain) CompressorMakeup() float32 { return c.Param(CompressorMakeup) }

// SetPhaserRate sets the phaser LFO rate; 0 holds the sweep still.
func (c *Chain) SetPhaserRate(v float32) { c.SetParam(PhaserRate, v) }

// PhaserRate returns the phaser LFO rate.
func (c *Chain) PhaserRate() float32 { return c.Param(PhaserRate) }

// SetPhaserDepth sets the phaser sweep depth.
func (c *Chain) SetPhaserDepth(v float32) { c.SetParam(PhaserDepth, v) }

// PhaserDepth returns the phaser sweep depth.
func (c *Chain) PhaserDepth() float32 { return c.Param(PhaserDepth) }

// SetPhaserFeedback sets the phaser feedback.
func (c *Chain) SetPhaserFeedback(v float32) { c.SetParam(PhaserFeedback, v) }

// PhaserFeedback returns the phaser feedback.
func (c *Chain) PhaserFeedback() float32 { return c.Param(PhaserFeedback) }

// SetReverbRoomSize sets the reverb room size.
func (c *Chain) SetReverbRoomSize(v float32) { c.SetParam(ReverbRoomSize, v) }

// ReverbRoomSize returns the reverb room size.
func (c *Chain) ReverbRoomSize() float32 { return c.Param(ReverbRoomSize) }

// SetReverbDamping sets the reverb high-frequency damping.
func (c *Chain) SetReverbDamping(v float32) { c.SetParam(ReverbDamping, v) }

// ReverbDamping returns the reverb high-frequency damping.
func (c *Chain) ReverbDamping() float32 { return c.Param(ReverbDamping) }

// SetReverbMix sets the reverb dry/wet mix.
func (c *Chain) SetReverbMix(v float32) { c.SetParam(ReverbMix, v) }

// ReverbMix returns the reverb dry/wet mix.
func (c *Chain) ReverbMix() float32 { return c.Param(ReverbMix) }

// SetDelayTime sets the echo time (0 to 1000 ms).
func (c *Chain) SetDelayTime(v float32) { c.SetParam(DelayTime, v) }

// DelayTime returns the echo time (0 to 1000 ms).
func (c *Chain) DelayTime() float32 { return c.Param(DelayTime) }

// SetDelayFeedback sets the echo feedback.
func (c *Chain) SetDelayFeedback(v float32) { c.SetParam(DelayFeedback, v) }

// DelayFeedback returns the echo feedback.
func (c *Chain) DelayFeedback() float32 { return c.Param(DelayFeedback) }

// SetDelayMix sets the echo dry/wet mix.
func (c *Chain) SetDelayMix(v float32) { c.SetParam(DelayMix, v) }

// DelayMix returns the echo dry/wet mix.
func (c *Chain) DelayMix() float32 { return c.Param(DelayMix) }

// SetDistortionEnabled enables or bypasses the distortion stage.
func (c *Chain) SetDistortionEnabled(on bool) { c.SetEnabled(StageDistortion, on) }

// DistortionEnabled reports whether the distortion stage is active.
func (c *Chain) DistortionEnabled() bool { return c.Enabled(StageDistortion) }

// SetFilterEnabled enables or bypasses the filter stage.
func (c *Chain) SetFilterEnabled(on bool) { c.SetEnabled(StageFilter, on) }

// FilterEnabled reports whether the filter stage is active.
func (c *Chain) FilterEnabled() bool { return c.Enabled(StageFilter) }

// SetEQEnabled enables or bypasses the EQ stage.
func (c *Chain) SetEQEnabled(on bool) { c.SetEnabled(StageEQ, on) }

// EQEnabled reports whether the EQ stage is active.
func (c *Chain) EQEnabled() bool { return c.Enabled(StageEQ) }

// SetCompressorEnabled enables or bypasses the compressor stage.
func (c *Chain) SetCompressorEnabled(on bool) { c.SetEnabled(StageCompressor, on) }

// CompressorEnabled reports whether the compressor stage is active.
func (c *Chain) CompressorEnabled() bool { return c.Enabled(StageCompressor) }

// SetPhaserEnabled enables or bypasses the phaser stage.
func (c *Chain) SetPhaserEnabled(on bool) { c.SetEnabled(StagePhaser, on) }

// PhaserEnabled reports whether the phaser stage is active.
func (c *Chain) PhaserEnabled() bool { return c.Enabled(StagePhaser) }

// SetReverbEnabled enables or bypasses the reverb stage.
func (c *Chain) SetReverbEnabled(on bool) { c.SetEnabled(StageReverb, on) }

// ReverbEnabled reports whether the reverb stage is active.
func (c *Chain) ReverbEnabled() bool { return c.Enabled(StageReverb) }

// SetDelayEnabled enables or bypasses the delay stage.
func (c *Chain) SetDelayEnabled(on bool) { c.SetEnabled(StageDelay, on) }

// DelayEnabled reports whether the delay stage is active.
func (c *Chain) DelayEnabled() bool { return c.Enabled(StageDelay) }
