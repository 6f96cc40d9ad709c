package application

// NOTE: LLMTransport interface has been consolidated into TransportService
// in unified_interfaces.go for better maintainability.
//
// Use TransportService instead of LLMTransport for new implementations.

// The supporting types and concrete implementations remain in this file.
