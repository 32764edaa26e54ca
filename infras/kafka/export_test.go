package kafka

var Deliver = deliver
