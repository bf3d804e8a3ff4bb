// Package events connects the upload pipeline to Kafka.
//
// A [Publisher] announces every stored upload on the uploads topic. The
// [StatusConsumer] reads processing results from the status topic and feeds
// them back into the upload service. When no brokers are configured the
// server uses [NopPublisher] and runs no consumer.
package events
