package logger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("environment configs", func() {
	DescribeTable("level, encoding and caller settings",
		func(build func() zap.Config, level zapcore.Level, encoding string, quiet bool) {
			cfg := build()

			Expect(cfg.Level.Level()).To(Equal(level))
			Expect(cfg.Encoding).To(Equal(encoding))
			Expect(cfg.DisableCaller).To(Equal(quiet))
			Expect(cfg.DisableStacktrace).To(Equal(quiet))
		},
		Entry("production", newProductionLoggerConfig, zap.InfoLevel, "json", false),
		Entry("staging", newStagingLoggerConfig, zap.InfoLevel, "json", true),
		Entry("development", newDevelopmentLoggerConfig, zap.DebugLevel, "console", true),
	)

	It("writes production and staging logs to stdout, errors to stderr", func() {
		for _, cfg := range []zap.Config{newProductionLoggerConfig(), newStagingLoggerConfig(), newDevelopmentLoggerConfig()} {
			Expect(cfg.OutputPaths).To(ConsistOf("stdout"))
			Expect(cfg.ErrorOutputPaths).To(ConsistOf("stderr"))
		}
	})

	It("gives test logs no outputs", func() {
		cfg := newTestLoggerConfig()

		Expect(cfg.OutputPaths).To(BeEmpty())
		Expect(cfg.ErrorOutputPaths).To(BeEmpty())
	})
})
