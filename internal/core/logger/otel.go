package logger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type OTELLogger struct {
	logger      otellog.Logger
	provider    *sdklog.LoggerProvider
	minSeverity otellog.Severity
}

func severityOf(level LogLevel) otellog.Severity {
	switch level {
	case LogLevelDebug:
		return otellog.SeverityDebug
	case LogLevelWarn:
		return otellog.SeverityWarn
	case LogLevelError:
		return otellog.SeverityError
	case LogLevelFatal:
		return otellog.SeverityFatal
	default:
		return otellog.SeverityInfo
	}
}

func initializeOtelLogger(collectorEndpoint, serviceName string, level LogLevel) (Logger, error) {
	ctx := context.Background()

	conn, err := grpc.NewClient(
		collectorEndpoint,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
	}

	logExporter, err := otlploggrpc.New(ctx, otlploggrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create log exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	processor := sdklog.NewBatchProcessor(logExporter)
	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(processor),
		sdklog.WithResource(res),
	)

	global.SetLoggerProvider(provider)

	return &OTELLogger{
		logger:      provider.Logger(serviceName),
		provider:    provider,
		minSeverity: severityOf(level),
	}, nil
}

func (l *OTELLogger) Log(ctx context.Context, entry LogEntry) {
	severity := severityOf(entry.Level)
	if severity < l.minSeverity {
		return
	}

	var logRecord otellog.Record
	logRecord.SetTimestamp(entry.Timestamp)
	logRecord.SetBody(otellog.StringValue(entry.Message))
	logRecord.SetSeverityText(string(entry.Level))
	logRecord.SetSeverity(severity)
	logRecord.AddAttributes(otelAttributes(entry.Attributes, entry.Error)...)
	l.logger.Emit(ctx, logRecord)
}

// otelAttributes converts attributes in key order. Types without a native
// OTEL value are rendered as strings.
func otelAttributes(values attributes, err error) []otellog.KeyValue {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	attrs := make([]otellog.KeyValue, 0, len(keys)+1)
	for _, key := range keys {
		var kv otellog.KeyValue
		switch v := values[key].(type) {
		case string:
			kv = otellog.String(key, v)
		case int:
			kv = otellog.Int(key, v)
		case int64:
			kv = otellog.Int64(key, v)
		case float64:
			kv = otellog.Float64(key, v)
		case bool:
			kv = otellog.Bool(key, v)
		case time.Time:
			kv = otellog.String(key, v.Format(time.RFC3339Nano))
		case fmt.Stringer:
			kv = otellog.String(key, v.String())
		default:
			kv = otellog.String(key, fmt.Sprintf("%v", v))
		}
		attrs = append(attrs, kv)
	}

	if err != nil {
		attrs = append(attrs, otellog.String("error", err.Error()))
	}
	return attrs
}

func (l *OTELLogger) Shutdown(ctx context.Context) error {
	return l.provider.Shutdown(ctx)
}
