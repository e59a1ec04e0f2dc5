package logger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dwarvesf/funds-backend/internal/types/environments"
)

var _ = Describe("Logger", func() {
	DescribeTable("New picks the level for each environment",
		func(env environments.Environment, debugEnabled bool) {
			l := New(env)

			Expect(l.wrappedLogger).NotTo(BeNil())
			Expect(l.wrappedLogger.Core().Enabled(zapcore.InfoLevel)).To(BeTrue())
			Expect(l.wrappedLogger.Core().Enabled(zapcore.DebugLevel)).To(Equal(debugEnabled))
		},
		Entry("development", environments.Development, true),
		Entry("staging", environments.Staging, false),
		Entry("production", environments.Production, false),
		Entry("test", environments.Test, false),
		Entry("unknown falls back to production", environments.Environment("qa"), false),
	)

	Describe("writing entries", func() {
		var (
			logs *observer.ObservedLogs
			l    *Logger
		)

		BeforeEach(func() {
			var core zapcore.Core
			core, logs = observer.New(zapcore.DebugLevel)
			l = &Logger{wrappedLogger: zap.New(core)}
		})

		It("turns the field map into string fields", func() {
			l.Info("[SubmitDeposit] deposit submitted", map[string]string{
				"deposit_id": "12",
				"amount":     "50",
			})

			Expect(logs.Len()).To(Equal(1))
			entry := logs.All()[0]
			Expect(entry.Message).To(Equal("[SubmitDeposit] deposit submitted"))
			Expect(entry.ContextMap()).To(Equal(map[string]interface{}{
				"deposit_id": "12",
				"amount":     "50",
			}))
		})

		It("logs at the level of the method called", func() {
			l.Debug("d")
			l.Info("i")
			l.Warn("w")
			l.Error("e", map[string]string{"error": "boom"})

			var levels []zapcore.Level
			for _, e := range logs.All() {
				levels = append(levels, e.Level)
			}
			Expect(levels).To(Equal([]zapcore.Level{
				zapcore.DebugLevel, zapcore.InfoLevel, zapcore.WarnLevel, zapcore.ErrorLevel,
			}))
		})

		It("only reads the first field map", func() {
			l.Warn("w", map[string]string{"a": "1"}, map[string]string{"b": "2"})

			Expect(logs.All()[0].ContextMap()).To(HaveKey("a"))
			Expect(logs.All()[0].ContextMap()).NotTo(HaveKey("b"))
		})
	})

	It("NewNop discards every level", func() {
		nop := NewNop()

		Expect(nop.wrappedLogger.Core().Enabled(zapcore.ErrorLevel)).To(BeFalse())
		Expect(func() { nop.Error("dropped", map[string]string{"k": "v"}) }).NotTo(Panic())
	})
})
