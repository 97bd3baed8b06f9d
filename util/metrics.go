package util

// MetricsBucketsMicroSeconds covers 128μs to 262ms, used for single transaction decodes.
var MetricsBucketsMicroSeconds = []float64{
	128e-6, 256e-6, 512e-6, 1024e-6, 2048e-6, 4096e-6, 8192e-6, 16384e-6, 32768e-6, 65536e-6, 131072e-6, 262144e-6,
}

// MetricsBucketsMilliSeconds covers 1ms to 4s, used for whole block decodes.
var MetricsBucketsMilliSeconds = []float64{
	1e-3, 2e-3, 4e-3, 16e-3, 32e-3, 64e-3, 128e-3, 256e-3, 512e-3, 1024e-3, 2048e-3, 4096e-3,
}

// MetricsBucketsSize covers 128 bytes to 256KB, the range of ordinary transactions.
var MetricsBucketsSize = []float64{
	128, 256, 512, 1024, 2048, 4096, 8192, 16384, 32768, 65536, 131072, 262144,
}

// MetricsBucketsBlockSize covers 256 bytes (an empty regtest block) up to 4GB.
var MetricsBucketsBlockSize = []float64{
	256, 4096, 65536, 262144, 1 << 20, 2 << 20, 4 << 20, 32 << 20, 128 << 20, 1 << 30, 4 << 30,
}
