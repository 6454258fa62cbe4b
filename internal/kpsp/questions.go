// Package kpsp implements the Kuesioner Pra Skrining Perkembangan, the
// yes/no developmental screening questionnaire used in Indonesian posyandu.
package kpsp

// Bank maps the lower bound of an age band (months) to its questions.
type Bank map[int][]string

// DefaultBank is the questionnaire for 3 to 24 months.
func DefaultBank() Bank {
	return Bank{
		3: {
			"Apakah anak dapat mengangkat kepalanya 45° saat tengkurap?",
			"Apakah anak tersenyum saat diajak bicara atau tersenyum sendiri?",
			"Apakah anak mengeluarkan suara-suara (mengoceh)?",
			"Apakah anak dapat menatap dan mengikuti wajah ibu/pengasuh?",
			"Apakah anak berusaha meraih benda atau mainan yang ditunjukkan?",
		},
		6: {
			"Apakah anak dapat duduk dengan bantuan (bersandar)?",
			"Apakah anak dapat memindahkan mainan dari tangan satu ke tangan lain?",
			"Apakah anak mengeluarkan suara vokal seperti 'a-u-o'?",
			"Apakah anak tertawa keras saat bermain atau diajak bercanda?",
			"Apakah anak mengenal orang asing (tampak malu atau marah)?",
		},
		9: {
			"Apakah anak dapat duduk sendiri tanpa bantuan minimal 1 menit?",
			"Apakah anak dapat merangkak maju (bukan mundur)?",
			"Apakah anak mengucapkan 'mama' atau 'papa' (meski berlebihan)?",
			"Apakah anak dapat meraih benda kecil dengan jempol dan telunjuk?",
			"Apakah anak dapat menirukan gerakan tepuk tangan?",
		},
		12: {
			"Apakah anak dapat berdiri sendiri minimal 5 detik tanpa berpegangan?",
			"Apakah anak dapat berjalan berpegangan pada furniture?",
			"Apakah anak dapat mengucapkan 2-3 kata yang bermakna?",
			"Apakah anak dapat minum dari cangkir sendiri?",
			"Apakah anak dapat menunjuk benda yang diinginkannya?",
		},
		15: {
			"Apakah anak dapat berjalan sendiri dengan stabil minimal 5 langkah?",
			"Apakah anak dapat minum dari gelas tanpa tumpah?",
			"Apakah anak dapat mengucapkan 4-6 kata dengan jelas?",
			"Apakah anak dapat menumpuk 2 kubus dengan stabil?",
			"Apakah anak dapat membantu melepas sepatunya sendiri?",
		},
		18: {
			"Apakah anak dapat berlari minimal 5 langkah berturut-turut?",
			"Apakah anak dapat naik tangga dengan bantuan pegangan?",
			"Apakah anak dapat mengucapkan 10-15 kata yang berbeda?",
			"Apakah anak dapat makan sendiri dengan sendok?",
			"Apakah anak dapat menunjuk minimal 2 bagian tubuhnya?",
		},
		21: {
			"Apakah anak dapat menendang bola ke depan tanpa jatuh?",
			"Apakah anak dapat naik tangga dengan 1 kaki bergantian?",
			"Apakah anak dapat mengucapkan kalimat 2-3 kata?",
			"Apakah anak dapat membalik halaman buku satu per satu?",
			"Apakah anak dapat mengikuti perintah sederhana 2 tahap?",
		},
		24: {
			"Apakah anak dapat melompat dengan 2 kaki bersamaan?",
			"Apakah anak dapat naik-turun tangga tanpa pegangan?",
			"Apakah anak dapat membuat kalimat 3-4 kata yang runtut?",
			"Apakah anak dapat menggambar garis vertikal setelah dicontohkan?",
			"Apakah anak dapat mengikuti perintah kompleks 3 tahap?",
		},
	}
}
