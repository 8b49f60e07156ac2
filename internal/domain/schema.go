package domain

// Register field names. These match the value columns of ocr_extracted_rows.
const (
	FieldNamaAnak     = "nama_anak"
	FieldTanggalLahir = "tanggal_lahir"
	FieldUmur         = "umur"
	FieldJenisKelamin = "jenis_kelamin"
	FieldNamaIbu      = "nama_ibu"
	FieldAlamat       = "alamat"
	FieldBBLalu       = "bb_lalu"
	FieldBBSekarang   = "bb_sekarang"
	FieldTB           = "tb"
	FieldStatusNT     = "status_nt"
)

// FieldNames lists the register fields in column order (Posyandu Format 3).
var FieldNames = []string{
	FieldNamaAnak,
	FieldTanggalLahir,
	FieldUmur,
	FieldJenisKelamin,
	FieldNamaIbu,
	FieldAlamat,
	FieldBBLalu,
	FieldBBSekarang,
	FieldTB,
	FieldStatusNT,
}

// ColumnFieldMap maps a zero-based table column index to its register field.
// Columns beyond this mapping are ignored during extraction.
var ColumnFieldMap = map[int]string{
	0: FieldNamaAnak,
	1: FieldTanggalLahir,
	2: FieldUmur,
	3: FieldJenisKelamin,
	4: FieldNamaIbu,
	5: FieldAlamat,
	6: FieldBBLalu,
	7: FieldBBSekarang,
	8: FieldTB,
	9: FieldStatusNT,
}

// FieldContext holds the per-field recognition context handed to the vision
// model together with the cell crop. Kept in Indonesian to match the
// handwriting on the registers.
var FieldContext = map[string]string{
	FieldNamaAnak:     "Nama lengkap anak balita, bahasa Indonesia, kemungkinan tulisan tangan",
	FieldTanggalLahir: "Tanggal lahir anak, format DD/MM/YYYY atau DD-MM-YYYY",
	FieldUmur:         "Umur anak dalam bulan atau tahun-bulan, contoh: 24 bln, 2 th 3 bln",
	FieldJenisKelamin: "Jenis kelamin anak, L untuk laki-laki atau P untuk perempuan",
	FieldNamaIbu:      "Nama ibu kandung anak, bahasa Indonesia",
	FieldAlamat:       "Alamat rumah, bisa singkatan RT/RW, nama dusun/kampung",
	FieldBBLalu:       "Berat badan bulan lalu dalam kg, format X.X seperti 8.5 atau 12.0",
	FieldBBSekarang:   "Berat badan bulan ini dalam kg, format X.X seperti 8.5 atau 12.0",
	FieldTB:           "Tinggi/panjang badan anak dalam cm, format XX.X seperti 75.5 atau 100.0",
	FieldStatusNT:     "Status kenaikan berat badan: N berarti Naik, T berarti Tidak Naik",
}

// FieldLabels holds the human-readable column headers used by the review
// workbook export.
var FieldLabels = map[string]string{
	FieldNamaAnak:     "Nama Anak",
	FieldTanggalLahir: "Tanggal Lahir",
	FieldUmur:         "Umur",
	FieldJenisKelamin: "Jenis Kelamin",
	FieldNamaIbu:      "Nama Ibu",
	FieldAlamat:       "Alamat",
	FieldBBLalu:       "BB Lalu (kg)",
	FieldBBSekarang:   "BB Sekarang (kg)",
	FieldTB:           "TB (cm)",
	FieldStatusNT:     "Status N/T",
}
