package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Common: Common{
			MaxLevel: 5,
			Rewards:  RewardConfig{Win: 20, Lose: 1, PerLevel: 5, ScorePerToken: 100},
			Scaling:  ScalingConfig{SpeedMultiplier: 0.6},
		},
		Physics: BreakoutPhysics{
			BallSpeed:   45,
			PaddleSpeed: 90,
			MaxSpin:     40,
			BallRadius:  1,
		},
		Paddle: BreakoutPaddle{Width: 16, Height: 2, Y: 92},
		Bricks: BreakoutBricks{
			Rows:   3,
			Cols:   6,
			Width:  12,
			Height: 4,
			Top:    10,
			Gap:    2,
			Points: 10,
		},
		Lives: 3,
	}
}

// DefaultRunnerConfig returns the default runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Common: Common{
			MaxLevel: 5,
			Rewards:  RewardConfig{Win: 15, PerLevel: 5, ScorePerToken: 200},
			Scaling:  ScalingConfig{SpeedMultiplier: 0.8, IntervalReduction: 0.4},
		},
		Physics: RunnerPhysics{
			Gravity:      52,
			JumpVelocity: -26,
			MaxFall:      60,
			Speed:        30,
			Ground:       90,
		},
		Obstacles: RunnerObstacles{
			MinWidth:     2,
			MaxWidth:     4,
			MinHeight:    4,
			MaxHeight:    6,
			SpawnEveryMs: 900,
		},
		Player: RunnerPlayer{X: 12, Width: 3, Height: 5},
		Goal:   600,
		Lives:  1,
	}
}

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Common: Common{
			MaxLevel: 5,
			Rewards:  RewardConfig{Win: 15, PerLevel: 5, ScorePerToken: 50},
			Scaling:  ScalingConfig{SpeedMultiplier: 0.5, IntervalReduction: 0.3},
		},
		Physics: FlappyPhysics{
			Gravity:      90,
			FlapVelocity: -32,
			MaxFall:      50,
			Speed:        25,
		},
		Pipes: FlappyPipes{
			Width:        8,
			MinGap:       26,
			MaxGap:       34,
			Margin:       8,
			SpawnEveryMs: 1800,
			GatePoints:   1,
		},
		Player: FlappyPlayer{X: 20, Size: 4},
		Goal:   400,
		Lives:  1,
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Common: Common{
			MaxLevel: 3,
			Stake:    10,
			Rewards:  RewardConfig{Win: 30, PerLevel: 10},
			Scaling:  ScalingConfig{SpeedMultiplier: 0.5},
		},
		Physics: PongPhysics{
			BallSpeed:   40,
			PaddleSpeed: 80,
			MaxSpin:     35,
			BallRadius:  1,
		},
		Paddles:  PongPaddles{Width: 2, Height: 16, Offset: 4},
		Gameplay: PongGameplay{WinScore: 5, ServeDelayMs: 1000},
		CPU:      PongCPU{Speed: 35, Jitter: 6},
	}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Common: Common{
			MaxLevel: 5,
			Rewards:  RewardConfig{Win: 20, PerLevel: 5},
			Scaling:  ScalingConfig{IntervalReduction: 0.5},
		},
		Cells:       20,
		StepEveryMs: 150,
		FoodPoints:  10,
		Target:      100,
		StartLength: 3,
	}
}

// DefaultMemoryConfig returns the default memory match configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Common: Common{
			MaxLevel: 3,
			Stake:    5,
			Rewards:  RewardConfig{Win: 25, PerLevel: 10},
			Scaling:  ScalingConfig{CountGrowth: 4},
		},
		Pairs:       8,
		Moves:       20,
		FlipDelayMs: 800,
		PairPoints:  10,
	}
}

// DefaultMergeConfig returns the default merge configuration.
func DefaultMergeConfig() MergeConfig {
	return MergeConfig{
		Common: Common{
			MaxLevel: 4,
			Rewards:  RewardConfig{Win: 40, PerLevel: 20, ScorePerToken: 500},
		},
		Size:   4,
		Target: 256,
	}
}

// DefaultYAML returns the embedded default YAML for a variant, or nil.
func DefaultYAML(variantID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + variantID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
